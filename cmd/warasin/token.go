package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"warasin/cmd/internal/auth/session"
	"warasin/cmd/security/token"
)

var errUndecodable = errors.New("token could not be decoded")

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Decode or mint credential tokens",
	}
	cmd.AddCommand(tokenDecodeCmd(), tokenMintCmd())
	return cmd
}

func tokenDecodeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "decode <token>",
		Short: "Print the session user a token resolves to",
		Long: `Decode a token the way the gateway does for every request and print the
resulting user claims as JSON. JWT signatures are not verified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := tokenConfig(format)
			if err != nil {
				return err
			}
			dec, err := token.NewDecoder(cfg)
			if err != nil {
				return fmt.Errorf("decoder: %w", err)
			}

			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
			acc, err := session.NewAccessor(session.NewMemoryProvider(strings.TrimSpace(args[0])), dec, log)
			if err != nil {
				return err
			}

			view := acc.Use()
			if !view.Authenticated() {
				return errUndecodable
			}
			return writeJSON(cmd, view.User)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "token format: jwt or paseto (default from WARASIN_TOKEN_FORMAT)")
	return cmd
}

func tokenMintCmd() *cobra.Command {
	var (
		format string
		sub    string
		role   string
		secret string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Sign a development token",
		Long: `Sign a token for local development. JWTs are HS256 with --secret
(or WARASIN_JWT_DEV_SECRET); PASETO v4.public tokens use
WARASIN_PASETO_V4_SECRET_KEY_HEX.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(sub) == "" {
				return errors.New("--sub is required")
			}
			cfg, err := tokenConfig(format)
			if err != nil {
				return err
			}
			if ttl > 0 {
				cfg.TTL = ttl
			}

			now := time.Now().UTC()
			claims := token.Claims{"sub": sub}
			if role != "" {
				claims["role"] = role
			}

			var raw string
			switch cfg.Format {
			case token.FormatPaseto:
				iss, err := token.NewPasetoV4Issuer(cfg)
				if err != nil {
					return fmt.Errorf("paseto issuer: %w", err)
				}
				raw, _, err = iss.Issue(claims, now)
				if err != nil {
					return err
				}
			default:
				if secret == "" {
					secret = os.Getenv("WARASIN_JWT_DEV_SECRET")
				}
				claims["iss"] = cfg.Issuer
				claims["iat"] = now.Unix()
				claims["exp"] = now.Add(cfg.TTL).Unix()
				raw, err = token.MintJWT(claims, []byte(secret))
				if err != nil {
					return fmt.Errorf("jwt: %w", err)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), raw)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "token format: jwt or paseto (default from WARASIN_TOKEN_FORMAT)")
	cmd.Flags().StringVar(&sub, "sub", "", "subject claim")
	cmd.Flags().StringVar(&role, "role", "", "role claim")
	cmd.Flags().StringVar(&secret, "secret", "", "HS256 secret for jwt tokens")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default from WARASIN_TOKEN_TTL)")
	return cmd
}

// tokenConfig loads the env config; a non-empty format flag overrides it.
func tokenConfig(format string) (token.Config, error) {
	cfg, err := token.LoadConfigFromEnv()
	if err != nil {
		return token.Config{}, fmt.Errorf("token config: %w", err)
	}
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "":
	case token.FormatJWT, token.FormatPaseto:
		cfg.Format = f
	default:
		return token.Config{}, fmt.Errorf("unknown --format %q", format)
	}
	return cfg, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
