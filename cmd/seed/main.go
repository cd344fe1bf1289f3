package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"aether-be/internal/auth"
	"aether-be/internal/config"
	"aether-be/internal/db"
	"aether-be/internal/logger"
	"aether-be/internal/product"
	"aether-be/internal/user"

	"go.uber.org/zap"
)

const usage = `usage: seed <command> [flags]

commands:
  products       upsert the demo catalog by SKU
  create-admin   create or promote an administrator
                 -email <addr> -password <secret> [-name <name>]`

var errUsage = errors.New("invalid usage")

type deps struct {
	products product.Service
	users    user.Service
}

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	d := deps{
		products: product.NewService(product.NewRepository(database)),
		users:    user.NewService(user.NewRepository(database), auth.NewTokenManager(cfg.JWTSecret)),
	}

	if err := run(context.Background(), os.Args[1:], d, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		logger.L().Error("seed failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, d deps, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "products":
		return seedProducts(ctx, d.products, out)
	case "create-admin":
		return createAdmin(ctx, args[1:], d.users, out)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func seedProducts(ctx context.Context, svc product.Service, out io.Writer) error {
	for _, p := range demoCatalog {
		saved, err := svc.Create(ctx, p)
		if err != nil {
			return fmt.Errorf("seed %s: %w", p.SKU, err)
		}
		fmt.Fprintf(out, "upserted %s (%s)\n", saved.SKU, saved.ID)
	}
	fmt.Fprintf(out, "seeded %d products\n", len(demoCatalog))
	return nil
}

func createAdmin(ctx context.Context, args []string, svc user.Service, out io.Writer) error {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	email := fs.String("email", "", "administrator email")
	password := fs.String("password", "", "administrator password")
	name := fs.String("name", "Administrador", "display name")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("%w: -email and -password are required", errUsage)
	}

	u, err := svc.UpsertAdmin(ctx, user.RegisterInput{
		Email:    *email,
		Password: *password,
		Name:     *name,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "administrator %s ready (%s)\n", u.Email, u.ID)
	return nil
}
