// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command ozpolatctl is an admin command line for the site API.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/olegiv/ozpolat-cms/internal/auth"
	"github.com/olegiv/ozpolat-cms/internal/client"
	"github.com/olegiv/ozpolat-cms/internal/version"
)

const usage = `ozpolatctl - admin tool for the Özpolat İnşaat site

Usage: ozpolatctl [options] <command> [args]

Commands:
  login                 Log in and store the admin token
  logout                Log out and forget the token
  check                 Report whether the stored token is valid
  list <entity>         Print projects, news, careers, gallery,
                        references, contacts or settings as JSON
  unread                Print the number of unread contact messages
  hash-password         Read a password from stdin and print its hash
  version               Print version information

Options:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("ozpolatctl", flag.ContinueOnError)
	apiURL := fs.String("api", envOr("OZ_API_URL", "http://localhost:5000"), "API base URL")
	tokenPath := fs.String("token-file", "", "Token file (default: user config dir)")
	timeout := fs.Duration("timeout", 30*time.Second, "Request timeout")
	fs.Usage = func() {
		_, _ = fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}
	cmd, rest := fs.Arg(0), fs.Args()[1:]

	switch cmd {
	case "version":
		_, err := fmt.Fprintln(stdout, "ozpolatctl "+version.Current().String())
		return err
	case "hash-password":
		return hashPassword(stdin, stdout)
	}

	path := *tokenPath
	if path == "" {
		p, err := client.DefaultTokenPath()
		if err != nil {
			return err
		}
		path = p
	}
	c, err := client.New(*apiURL, client.WithTokenStore(client.NewFileTokenStore(path)))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	switch cmd {
	case "login":
		password := os.Getenv("OZ_ADMIN_PASSWORD")
		if password == "" {
			if password, err = readLine(stdin); err != nil {
				return err
			}
		}
		res, err := c.Auth.Login(ctx, password)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "logged in, token expires %s\n", res.ExpiresAt.Format(time.RFC3339))
		return err
	case "logout":
		if err := c.Auth.Logout(ctx); err != nil && !client.IsUnauthorized(err) {
			return err
		}
		_, err := fmt.Fprintln(stdout, "logged out")
		return err
	case "check":
		res, err := c.Auth.Check(ctx)
		if err != nil {
			return err
		}
		if !res.Authenticated {
			return errors.New("not authenticated")
		}
		_, err = fmt.Fprintln(stdout, "authenticated")
		return err
	case "unread":
		n, err := c.Contact.UnreadCount(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, n)
		return err
	case "list":
		if len(rest) != 1 {
			return errors.New("list needs exactly one entity")
		}
		v, err := list(ctx, c, rest[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func list(ctx context.Context, c *client.Client, entity string) (any, error) {
	switch entity {
	case "projects":
		return c.Projects.List(ctx, "")
	case "news":
		return c.News.List(ctx)
	case "careers":
		return c.Careers.List(ctx, client.CareerFilter{All: true})
	case "gallery":
		return c.Gallery.List(ctx, "", "")
	case "references":
		return c.References.List(ctx, true)
	case "contacts":
		return c.Contact.List(ctx, client.ContactFilter{})
	case "settings":
		return c.Settings.Get(ctx)
	default:
		return nil, fmt.Errorf("unknown entity %q", entity)
	}
}

// hashPassword prints the argon2id hash for OZ_ADMIN_PASSWORD.
func hashPassword(stdin io.Reader, stdout io.Writer) error {
	password, err := readLine(stdin)
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("empty password")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, hash)
	return err
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
