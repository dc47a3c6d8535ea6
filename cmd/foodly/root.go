package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"foodly/client"
	"foodly/pkg/cart"
	"foodly/pkg/identity"
	"foodly/pkg/kv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app is the state every command shares: one session, one cart.
type app struct {
	out     io.Writer
	log     *zap.Logger
	api     *client.Client
	store   kv.Store
	session *identity.Session
	cart    *cart.Store
}

type options struct {
	api     string
	home    string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	a := &app{}

	root := &cobra.Command{
		Use:           "foodly",
		Short:         "Order food from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context(), opts, cmd.OutOrStdout())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.api, "api", envOr("FOODLY_API", "http://localhost:8000"), "API base URL")
	root.PersistentFlags().StringVar(&opts.home, "home", os.Getenv("FOODLY_HOME"), "state directory (default ~/.foodly)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newLoginCmd(a), newSignupCmd(a), newLogoutCmd(a), newWhoamiCmd(a),
		newRestaurantsCmd(a), newMenuCmd(a),
		newCartCmd(a),
		newCheckoutCmd(a), newOrdersCmd(a),
	)
	return root
}

func (a *app) open(ctx context.Context, opts *options, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a.out = out

	lvl := zapcore.WarnLevel
	if opts.verbose {
		lvl = zapcore.DebugLevel
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	log, err := zcfg.Build()
	if err != nil {
		return err
	}
	a.log = log

	home := opts.home
	if home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("locate home: %w", err)
		}
		home = filepath.Join(dir, ".foodly")
	}
	store, err := kv.NewFile(home)
	if err != nil {
		return err
	}
	a.store = store

	a.api = client.New(opts.api)
	a.session = identity.Open(ctx, store, a.api, log)
	if u, ok := a.session.Current(); ok {
		a.api = a.api.WithToken(u.Token)
	}

	a.cart = cart.NewStore(cart.Load(ctx, store, cart.Key, log), cart.Saver(store, cart.Key))
	a.session.OnLogout(func(ctx context.Context) error {
		_, err := a.cart.Clear(ctx)
		return err
	})

	log.Debug("state opened", zap.String("home", home), zap.String("api", opts.api))
	return nil
}

// requireUser fails with a hint when nobody is signed in.
func (a *app) requireUser() (identity.User, error) {
	u, err := a.session.Require()
	if errors.Is(err, identity.ErrNotSignedIn) {
		return u, fmt.Errorf("%w: run `foodly login` first", err)
	}
	return u, err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
