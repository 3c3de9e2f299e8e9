// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/olegiv/ozpolat-cms/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("project_category", func(fl validator.FieldLevel) bool {
		return model.ProjectCategory(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("career_type", func(fl validator.FieldLevel) bool {
		return model.CareerType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("gallery_type", func(fl validator.FieldLevel) bool {
		return model.GalleryType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("contact_subject", func(fl validator.FieldLevel) bool {
		return model.ContactSubject(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// check validates s and converts validator errors to *ValidationError.
func check(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return &ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param()
	case "gte":
		return "must be " + fe.Param() + " or greater"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "project_category":
		return "must be one of ongoing, completed"
	case "career_type":
		return "must be one of full-time, part-time, internship"
	case "gallery_type":
		return "must be one of image, video"
	case "contact_subject":
		return "is not a known subject"
	default:
		return "is invalid"
	}
}
