// Command exoticworld browses the ExoticWorld catalog and manages the cart
// of the locally saved user from the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"exoticworld/apiclient"
	"exoticworld/config"
	"exoticworld/controller"
	"exoticworld/preferences"
	"exoticworld/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const usage = `usage: exoticworld [flags] <command> [args]

commands:
  products                  list the catalog
  search <name>             search products by name
  product <id>              show one product
  cart                      show the cart and its total
  add <productId> [qty]     add units to the cart (default 1)
  dec <productId>           remove one unit
  set <productId> <qty>     set the quantity of a cart line
  remove <productId>        remove a cart line
  clear                     empty the cart
  user [id]                 show or change the saved user
  reset-user                forget the saved user

flags:
`

func main() {
	log.SetFlags(0)

	if err := config.LoadEnv(); err != nil {
		log.Fatal("Error loading .env file:", err)
	}
	if err := config.ValidateClientEnv(); err != nil {
		log.Fatal("Environment validation failed: ", err)
	}
	cfg := config.Client()

	fs := flag.NewFlagSet("exoticworld", flag.ExitOnError)
	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "service base URL")
	fs.StringVar(&cfg.PrefsDB, "prefs", cfg.PrefsDB, "preferences database file")
	fs.DurationVar(&cfg.ConnectTimeout, "connect-timeout", cfg.ConnectTimeout, "connect timeout")
	fs.DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "read timeout")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log every HTTP request")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, fs.Args(), os.Stdout); err != nil {
		var usageErr usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(os.Stderr, err)
			fs.Usage()
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

type usageError string

func (e usageError) Error() string { return string(e) }

func newController(cfg config.ClientConfig) (*controller.Controller, func(), error) {
	client, err := apiclient.New(cfg.APIURL,
		apiclient.WithTimeouts(cfg.ConnectTimeout, cfg.ReadTimeout),
		apiclient.WithVerbose(cfg.Verbose),
	)
	if err != nil {
		return nil, nil, err
	}

	db, err := gorm.Open(sqlite.Open(cfg.PrefsDB), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, nil, fmt.Errorf("open preferences %s: %w", cfg.PrefsDB, err)
	}
	prefs, err := preferences.NewDBStore(db)
	if err != nil {
		return nil, nil, err
	}

	ctl := controller.New(repository.NewProductRepository(client), repository.NewCartRepository(client), prefs)
	cleanup := func() {
		ctl.Close()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return ctl, cleanup, nil
}

func run(ctx context.Context, cfg config.ClientConfig, args []string, out io.Writer) error {
	op, show, err := command(args)
	if err != nil {
		return err
	}

	ctl, cleanup, err := newController(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctl.ResolveUser(ctx)

	done := ctl.Go(func(taskCtx context.Context) error { return op(taskCtx, ctl) })
	select {
	case err = <-done:
	case <-ctx.Done():
		ctl.Close()
		err = <-done
	}
	if err != nil {
		return err
	}

	return show(out, ctl.Snapshot())
}

type (
	operation func(ctx context.Context, ctl *controller.Controller) error
	renderer  func(out io.Writer, snap controller.Snapshot) error
)

func command(args []string) (operation, renderer, error) {
	name, rest := args[0], args[1:]

	switch name {
	case "products":
		return func(ctx context.Context, ctl *controller.Controller) error {
			return ctl.LoadCatalog(ctx)
		}, renderProducts, nil

	case "search":
		if len(rest) != 1 {
			return nil, nil, usageError("search needs a name")
		}
		return func(ctx context.Context, ctl *controller.Controller) error {
			return ctl.Search(ctx, rest[0])
		}, renderProducts, nil

	case "product":
		id, err := intArgs(rest, "product id")
		if err != nil {
			return nil, nil, err
		}
		return func(ctx context.Context, ctl *controller.Controller) error {
			return ctl.LoadProduct(ctx, id[0])
		}, renderProduct, nil

	case "cart":
		return func(ctx context.Context, ctl *controller.Controller) error {
			return ctl.LoadCart(ctx)
		}, renderCart, nil

	case "add":
		if len(rest) == 1 {
			rest = append(rest, "1")
		}
		ids, err := intArgs(rest, "product id", "quantity")
		if err != nil {
			return nil, nil, err
		}
		return func(ctx context.Context, ctl *controller.Controller) error {
			return ctl.AddToCart(ctx, ids[0], ids[1])
		}, renderCart, nil

	case "dec":
		ids, err := intArgs(rest, "product id")
		if err != nil {
			return nil, nil, err
		}
		return func(ctx context.Context, ctl *controller.Controller) error {
			return ctl.Decrement(ctx, ids[0])
		}, renderCart, nil

	case "set":
		ids, err := intArgs(rest, "product id", "quantity")
		if err != nil {
			return nil, nil, err
		}
		return func(ctx context.Context, ctl *controller.Controller) error {
			return ctl.SetQuantity(ctx, ids[0], ids[1])
		}, renderCart, nil

	case "remove":
		ids, err := intArgs(rest, "product id")
		if err != nil {
			return nil, nil, err
		}
		return func(ctx context.Context, ctl *controller.Controller) error {
			return ctl.RemoveItem(ctx, ids[0])
		}, renderCart, nil

	case "clear":
		return func(ctx context.Context, ctl *controller.Controller) error {
			return ctl.ClearCart(ctx)
		}, renderCart, nil

	case "user":
		if len(rest) == 0 {
			return func(context.Context, *controller.Controller) error { return nil }, renderUser, nil
		}
		return func(ctx context.Context, ctl *controller.Controller) error {
			return ctl.SetUserID(ctx, rest[0])
		}, renderUser, nil

	case "reset-user":
		return func(ctx context.Context, ctl *controller.Controller) error {
			return ctl.ResetUser(ctx)
		}, renderUser, nil
	}

	return nil, nil, usageError(fmt.Sprintf("unknown command %q", name))
}

// intArgs parses exactly one integer argument per name.
func intArgs(args []string, names ...string) ([]int, error) {
	if len(args) != len(names) {
		return nil, usageError(fmt.Sprintf("expected %d argument(s): %v", len(names), names))
	}
	values := make([]int, len(args))
	for i, raw := range args {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, usageError(fmt.Sprintf("%s must be a number, got %q", names[i], raw))
		}
		values[i] = n
	}
	return values, nil
}
