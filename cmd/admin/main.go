// Command admin manages accounts from the shell.
//
//	admin create -name "Site Admin" -email admin@example.com -password 'S3cret!pass'
//	admin list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"unicatalog/internal/config"
	"unicatalog/internal/database"
	"unicatalog/internal/entity"
	"unicatalog/internal/password"
	"unicatalog/internal/repository"
	"unicatalog/internal/validation"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	errorText   = color.New(color.FgRed)
	warnText    = color.New(color.FgYellow)
	successText = color.New(color.FgGreen)
	infoText    = color.New(color.FgCyan)
	adminRole   = color.New(color.FgRed, color.Bold).SprintFunc()
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code so deferred cleanup always happens.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || (args[0] != "create" && args[0] != "list") {
		usage(stderr)
		return 2
	}

	cfg := config.Load()
	db, err := database.Open(cfg)
	if err != nil {
		errorText.Fprintf(stderr, "database: %v\n", err)
		return 1
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		errorText.Fprintf(stderr, "migrate: %v\n", err)
		return 1
	}

	users := repository.NewUserRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if args[0] == "create" {
		err = createAdmin(ctx, users, args[1:], stdout)
	} else {
		err = listUsers(ctx, users, stdout)
	}

	if err != nil {
		errorText.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: admin create -name NAME -email EMAIL -password PASSWORD")
	fmt.Fprintln(w, "       admin list")
}

func createAdmin(ctx context.Context, users *repository.UserRepository, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(w)
	name := fs.String("name", "Administrator", "display name")
	email := fs.String("email", "", "login email")
	plain := fs.String("password", "", "initial password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := validation.NewAdminForm(*name, *email, *plain)
	if msgs := validation.Check(form); len(msgs) > 0 {
		return fmt.Errorf("create: %s", strings.Join(msgs, "; "))
	}

	hash, err := password.Hash(form.Password)
	if err != nil {
		return err
	}

	u, err := users.CreateWithRole(ctx, form.Name, form.Email, hash, entity.RoleAdmin)
	if errors.Is(err, repository.ErrEmailTaken) {
		warnText.Fprintf(w, "An account with email %s already exists, nothing to do.\n", form.Email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	successText.Fprintf(w, "Admin user created (id %d, %s).\n", u.ID, u.Email)
	return nil
}

func listUsers(ctx context.Context, users *repository.UserRepository, w io.Writer) error {
	list, err := users.List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(list) == 0 {
		warnText.Fprintln(w, "No users registered yet.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Email", "Role", "Registered"})
	for _, u := range list {
		role := u.RoleName
		if role == entity.RoleAdmin {
			role = adminRole(role)
		}
		table.Append([]string{
			strconv.Itoa(u.ID),
			u.Name,
			u.Email,
			role,
			u.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	table.Render()

	infoText.Fprintf(w, "%d user(s)\n", len(list))
	return nil
}
