package main

import (
	"errors"
	"fmt"
	"time"

	"workorders/cmd"
	httpin "workorders/internal/adapters/in/http"
	"workorders/internal/core/domain/model/kernel"

	"github.com/spf13/cobra"
)

func tokenCmd(envFile *string) *cobra.Command {
	var ttl time.Duration

	c := &cobra.Command{
		Use:   "token <actor-id> <admin|worker>",
		Short: "Issue a bearer token for local use",
		Args:  cobra.ExactArgs(2),
		RunE: func(command *cobra.Command, args []string) error {
			config, err := cmd.LoadConfig(*envFile)
			if err != nil {
				return err
			}
			if config.JWTSecret == "" {
				return errors.New("JWT_SECRET is required")
			}

			id, err := kernel.UUIDFromString(args[0])
			if err != nil {
				return err
			}
			role, err := kernel.ParseRole(args[1])
			if err != nil {
				return err
			}
			actor, err := kernel.NewActor(id, role)
			if err != nil {
				return err
			}

			token, err := httpin.IssueToken([]byte(config.JWTSecret), actor, time.Now(), ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(command.OutOrStdout(), token)
			return err
		},
	}
	c.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return c
}
