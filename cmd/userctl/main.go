package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"ota-report-backend/config"
	"ota-report-backend/internal/db"
	"ota-report-backend/internal/model"
	"ota-report-backend/internal/store"
)

const bcryptCost = 10

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "userctl",
		Short: "Manage operator accounts for the report API",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "./config/config.yaml", "path to config file")

	openStore := func() (store.UserStore, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		gormDB, err := db.Init(&cfg.Database)
		if err != nil {
			return nil, err
		}
		return store.NewGormStore(gormDB), nil
	}

	var name, email, role, password string
	var facilities []string

	addCmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create an operator account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return fmt.Errorf("--password is required")
			}
			users, err := openStore()
			if err != nil {
				return err
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			u := &model.User{
				Username:   args[0],
				Password:   string(hash),
				Name:       name,
				Email:      email,
				Role:       role,
				Facilities: facilities,
			}
			if err := users.Create(context.Background(), u); err != nil {
				return err
			}
			fmt.Printf("created user %s (role %s)\n", u.Username, u.Role)
			return nil
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "display name")
	addCmd.Flags().StringVar(&email, "email", "", "email address")
	addCmd.Flags().StringVar(&role, "role", "viewer", "role (admin or viewer)")
	addCmd.Flags().StringVar(&password, "password", "", "account password")
	addCmd.Flags().StringSliceVar(&facilities, "facility", nil, "facility id the account may access (repeatable)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List operator accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := openStore()
			if err != nil {
				return err
			}
			all, err := users.List(context.Background())
			if err != nil {
				return err
			}
			for _, u := range all {
				fmt.Printf("%-20s %-8s %s\n", u.Username, u.Role, strings.Join(u.Facilities, ","))
			}
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete an operator account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := openStore()
			if err != nil {
				return err
			}
			if err := users.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted user %s\n", args[0])
			return nil
		},
	}

	var newPassword string
	passwdCmd := &cobra.Command{
		Use:   "passwd <username>",
		Short: "Change an account's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if newPassword == "" {
				return fmt.Errorf("--password is required")
			}
			users, err := openStore()
			if err != nil {
				return err
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			if err := users.UpdatePassword(context.Background(), args[0], string(hash)); err != nil {
				return err
			}
			fmt.Printf("updated password for %s\n", args[0])
			return nil
		},
	}
	passwdCmd.Flags().StringVar(&newPassword, "password", "", "new password")

	root.AddCommand(addCmd, listCmd, deleteCmd, passwdCmd)

	if err := root.Execute(); err != nil {
		log.SetFlags(0)
		log.Println(err)
		os.Exit(1)
	}
}
