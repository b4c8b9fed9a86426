// Command blogadmin manages the administrative data of the blog: schema
// migrations, categories, locations and accounts.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/blogicum/core/internal/config"
	"github.com/blogicum/core/internal/database"
	"github.com/blogicum/core/internal/modules/auth/user"
	"github.com/blogicum/core/internal/modules/content/category"
	"github.com/blogicum/core/internal/modules/content/location"
	sessionpkg "github.com/blogicum/core/internal/pkg/session"
	"gorm.io/gorm"
)

const usage = `usage: blogadmin [-config config.yml] <command> [flags]

commands:
  migrate                                   create or update tables
  add-category -title T -slug S -description D [-unpublished]
  publish-category -slug S [-hide]          show or hide a category and its posts
  delete-category -id N                     delete a category, keeping its posts
  add-location -name N [-unpublished]
  delete-location -id N
  create-user -username U -password P
  purge-sessions [-older-than 168h]
`

var errUsage = errors.New("invalid usage")

type opener func(cfg *config.AppConfig) (*gorm.DB, error)

func main() {
	open := func(cfg *config.AppConfig) (*gorm.DB, error) { return database.Connect(cfg, false) }
	if err := run(os.Args[1:], os.Stdout, open); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		fmt.Fprintln(os.Stderr, "blogadmin:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer, open opener) error {
	global := flag.NewFlagSet("blogadmin", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	configPath := global.String("config", config.DefaultConfigPath, "Path to YAML config file")
	if err := global.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if global.NArg() == 0 {
		return errUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	db, err := open(cfg)
	if err != nil {
		return err
	}

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "migrate":
		if err := database.Migrate(db); err != nil {
			return err
		}
		fmt.Fprintln(out, "migrated")
		return nil
	case "add-category":
		return addCategory(db, rest, out)
	case "publish-category":
		return publishCategory(db, rest, out)
	case "delete-category":
		return deleteByID("delete-category", rest, out, category.NewService(db).Delete)
	case "add-location":
		return addLocation(db, rest, out)
	case "delete-location":
		return deleteByID("delete-location", rest, out, location.NewService(db).Delete)
	case "create-user":
		return createUser(db, cfg, rest, out)
	case "purge-sessions":
		return purgeSessions(db, rest, out)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func parse(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

func addCategory(db *gorm.DB, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add-category", flag.ContinueOnError)
	title := fs.String("title", "", "category title")
	slug := fs.String("slug", "", "URL slug")
	description := fs.String("description", "", "category description")
	unpublished := fs.Bool("unpublished", false, "hide the category")
	if err := parse(fs, args); err != nil {
		return err
	}

	c, err := category.NewService(db).Create(&category.CreateCategoryDTO{
		Title:       strings.TrimSpace(*title),
		Description: strings.TrimSpace(*description),
		Slug:        strings.TrimSpace(*slug),
		IsPublished: !*unpublished,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "category %d %q created\n", c.ID, c.Slug)
	return nil
}

func publishCategory(db *gorm.DB, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("publish-category", flag.ContinueOnError)
	slug := fs.String("slug", "", "URL slug")
	hide := fs.Bool("hide", false, "unpublish instead")
	if err := parse(fs, args); err != nil {
		return err
	}

	if err := category.NewService(db).SetPublished(strings.TrimSpace(*slug), !*hide); err != nil {
		return err
	}
	state := "published"
	if *hide {
		state = "hidden"
	}
	fmt.Fprintf(out, "category %q %s\n", *slug, state)
	return nil
}

func deleteByID(name string, args []string, out io.Writer, del func(id uint) error) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	id := fs.Uint("id", 0, "row id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("%w: -id is required", errUsage)
	}

	if err := del(uint(*id)); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %d done\n", name, *id)
	return nil
}

func addLocation(db *gorm.DB, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add-location", flag.ContinueOnError)
	name := fs.String("name", "", "location name")
	unpublished := fs.Bool("unpublished", false, "hide the location")
	if err := parse(fs, args); err != nil {
		return err
	}

	l, err := location.NewService(db).Create(*name, !*unpublished)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "location %d %q created\n", l.ID, l.Name)
	return nil
}

func createUser(db *gorm.DB, cfg *config.AppConfig, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	username := fs.String("username", "", "login name")
	password := fs.String("password", "", "password, at least 8 characters")
	if err := parse(fs, args); err != nil {
		return err
	}
	if len(*password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	u, err := user.NewService(db, cfg.SessionTTL()).Register(*username, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "user %d %q created\n", u.ID, u.Username)
	return nil
}

func purgeSessions(db *gorm.DB, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("purge-sessions", flag.ContinueOnError)
	olderThan := fs.Duration("older-than", 7*24*time.Hour, "keep sessions that ended more recently")
	if err := parse(fs, args); err != nil {
		return err
	}

	n, err := sessionpkg.Purge(db, time.Now().Add(-*olderThan))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d sessions purged\n", n)
	return nil
}
