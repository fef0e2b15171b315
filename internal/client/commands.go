// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

// ErrUsage is returned for an unknown command or bad command arguments.
var ErrUsage = errors.New("usage error")

const usage = `usage: client [global flags] <command> [flags]

commands:
  login -u <username> [-p <password>]
  register -u <username> -e <email> [-p <password>] [--first <name>] [--last <name>]
  refresh
  logout
  status
  profile
  user <id>
  delete-user <id>
  version`

func (a *App) runCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.presenter.text(usage)
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "register":
		return a.register(ctx, rest)
	case "refresh":
		return a.do(ctx, Refresh{})
	case "logout":
		return a.do(ctx, Logout{})
	case "status":
		if err := a.do(ctx, CheckSession{}); err != nil {
			return err
		}
		a.presenter.status(a.model.State())
		return nil
	case "profile":
		if err := a.do(ctx, LoadProfile{}); err != nil {
			return err
		}
		a.presenter.user("Profile", a.model.State().User)
		return nil
	case "user":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		if err = a.do(ctx, LoadUser{ID: id}); err != nil {
			return err
		}
		a.presenter.user("User", a.model.State().Viewed)
		return nil
	case "delete-user":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		return a.do(ctx, DeleteUser{ID: id})
	case "version":
		a.presenter.text(a.build.String())
		return nil
	case "help", "-h", "--help":
		a.presenter.text(usage)
		return nil
	default:
		a.presenter.text(usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
	fs.SetOutput(a.presenter.out)
	username := fs.StringP("username", "u", "", "account username")
	password := fs.StringP("password", "p", "", "account password (read from stdin when omitted)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if *username == "" {
		return fmt.Errorf("%w: login needs --username", ErrUsage)
	}

	pass, err := a.passwordOr(*password)
	if err != nil {
		return err
	}

	return a.do(ctx, Login{Request: models.LoginRequest{Username: *username, Password: pass}})
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("register", pflag.ContinueOnError)
	fs.SetOutput(a.presenter.out)
	username := fs.StringP("username", "u", "", "account username")
	email := fs.StringP("email", "e", "", "account email")
	password := fs.StringP("password", "p", "", "account password (read from stdin when omitted)")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if *username == "" || *email == "" {
		return fmt.Errorf("%w: register needs --username and --email", ErrUsage)
	}

	pass, err := a.passwordOr(*password)
	if err != nil {
		return err
	}

	return a.do(ctx, Register{Request: models.RegisterRequest{
		Username:  *username,
		Email:     *email,
		Password:  pass,
		FirstName: *first,
		LastName:  *last,
	}})
}

// passwordOr returns flagValue, or the first line of stdin when it is empty.
func (a *App) passwordOr(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if a.in == nil {
		return "", fmt.Errorf("%w: password required", ErrUsage)
	}

	line, err := bufio.NewReader(a.in).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		if err != nil {
			return "", fmt.Errorf("%w: password required: %w", ErrUsage, err)
		}
		return "", fmt.Errorf("%w: password required", ErrUsage)
	}

	return line, nil
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected one user id", ErrUsage)
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid user id %q", ErrUsage, args[0])
	}
	return id, nil
}
