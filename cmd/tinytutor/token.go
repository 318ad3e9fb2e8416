package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/brainboyai/tiny-tutor-api/internal/auth"
)

var (
	tokenUserID   string
	tokenUsername string
	tokenTier     string
	tokenTTL      time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a signed bearer token for local testing",
	Long: `Print a JWT signed with JWT_SECRET.

Production tokens are issued by the identity service; this command exists
so the API can be exercised locally with curl.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if settings.JWTSecret == "" {
			return errors.New("JWT_SECRET is not set")
		}
		auth.Init(settings.JWTSecret)

		if tokenUserID == "" {
			tokenUserID = uuid.NewString()
		} else if _, err := uuid.Parse(tokenUserID); err != nil {
			return fmt.Errorf("--user must be a UUID: %w", err)
		}

		token, err := auth.GenerateJWT(tokenUserID, tokenUsername, tokenTier, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user", "", "user id (default: random UUID)")
	tokenCmd.Flags().StringVar(&tokenUsername, "username", "dev", "username claim")
	tokenCmd.Flags().StringVar(&tokenTier, "tier", "free", "tier claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")

	rootCmd.AddCommand(tokenCmd)
}
