// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ozpolat-cms/internal/model"
)

func TestProjectRiversideTowers(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	created, err := svc.Projects.Create(ctx, ProjectInput{
		Title:    "Riverside Towers",
		Category: "ongoing",
		Location: "Ankara",
		Year:     "2024",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.ProjectOngoing, created.Category)
	assert.Equal(t, model.DefaultProjectImage, created.Image)
	assert.NotNil(t, created.Gallery)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	list, err := svc.Projects.List(ctx, ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, *created, list[0])

	got, err := svc.Projects.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestProjectCreateValidation(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Projects.Create(ctx, ProjectInput{Title: "   ", Category: "ongoing"})
	requireValidation(t, err, "title")

	_, err = svc.Projects.Create(ctx, ProjectInput{Title: "X", Category: "planned"})
	requireValidation(t, err, "category")

	list, err := svc.Projects.List(ctx, ProjectFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProjectCategoryAliases(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	p, err := svc.Projects.Create(ctx, ProjectInput{Title: "Eski", Category: "tamamlanan"})
	require.NoError(t, err)
	assert.Equal(t, model.ProjectCompleted, p.Category)
	_, err = svc.Projects.Create(ctx, ProjectInput{Title: "Yeni", Category: "devam-eden"})
	require.NoError(t, err)

	done, err := svc.Projects.List(ctx, ProjectFilter{Category: "completed"})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "Eski", done[0].Title)

	ongoing, err := svc.Projects.List(ctx, ProjectFilter{Category: "devam-eden"})
	require.NoError(t, err)
	require.Len(t, ongoing, 1)
	assert.Equal(t, "Yeni", ongoing[0].Title)
}

func TestProjectPartialUpdateKeepsOtherFields(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	p, err := svc.Projects.Create(ctx, ProjectInput{
		Title: "Riverside Towers", Category: "ongoing", Location: "Ankara", Year: "2024",
		Gallery: []string{"/uploads/projects/a.jpg"},
	})
	require.NoError(t, err)

	updated, err := svc.Projects.Update(ctx, p.ID, ProjectPatch{Location: ptr("İzmir")})
	require.NoError(t, err)
	assert.Equal(t, "İzmir", updated.Location)
	assert.Equal(t, "Riverside Towers", updated.Title)
	assert.Equal(t, "2024", updated.Year)
	assert.Equal(t, []string{"/uploads/projects/a.jpg"}, updated.Gallery)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(p.UpdatedAt))

	updated, err = svc.Projects.Update(ctx, p.ID, ProjectPatch{AppendGallery: []string{"/uploads/projects/b.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/projects/a.jpg", "/uploads/projects/b.jpg"}, updated.Gallery)

	updated, err = svc.Projects.Update(ctx, p.ID, ProjectPatch{Gallery: &[]string{}})
	require.NoError(t, err)
	assert.Empty(t, updated.Gallery)
	assert.NotNil(t, updated.Gallery)
}

func TestProjectUpdateTrimsTitle(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	p, err := svc.Projects.Create(ctx, ProjectInput{Title: "A", Category: "ongoing"})
	require.NoError(t, err)

	updated, err := svc.Projects.Update(ctx, p.ID, ProjectPatch{Title: ptr("  Kule  ")})
	require.NoError(t, err)
	assert.Equal(t, "Kule", updated.Title)

	_, err = svc.Projects.Update(ctx, p.ID, ProjectPatch{Title: ptr("   ")})
	requireValidation(t, err, "title")
}

func TestProjectUpdateRejectsBadCategory(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	p, err := svc.Projects.Create(ctx, ProjectInput{Title: "A", Category: "ongoing"})
	require.NoError(t, err)

	_, err = svc.Projects.Update(ctx, p.ID, ProjectPatch{Category: ptr("someday")})
	requireValidation(t, err, "category")

	got, err := svc.Projects.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectOngoing, got.Category)
}

func TestProjectDelete(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	p, err := svc.Projects.Create(ctx, ProjectInput{Title: "A", Category: "ongoing"})
	require.NoError(t, err)

	require.NoError(t, svc.Projects.Delete(ctx, p.ID))

	_, err = svc.Projects.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	err = svc.Projects.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Projects.Update(ctx, p.ID, ProjectPatch{Title: ptr("B")})
	assert.ErrorIs(t, err, ErrNotFound)
}
