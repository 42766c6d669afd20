package app

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/go-scaffold/go-scaffold/internal/config"
	"github.com/go-scaffold/go-scaffold/internal/db/gateway"
	"github.com/go-scaffold/go-scaffold/internal/db/models"
	"github.com/go-scaffold/go-scaffold/internal/logger"
)

var (
	cfg *config.Settings

	activeOnly bool

	dbCmd = &cobra.Command{
		Use:   "db",
		Short: "Database maintenance and user management commands",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			if cfg, err = config.Resolve(cfgPath); err != nil {
				return err
			}

			return logger.Init(cfg.AppName, cfg.Log)
		},
	}
)

func init() { //nolint: gochecknoinits
	dbListUsersCmd.Flags().BoolVar(&activeOnly, "active", false, "Only list active users")

	dbCmd.AddCommand(
		dbInitCmd,
		dbPingCmd,
		dbCreateUserCmd,
		dbGetUserCmd,
		dbListUsersCmd,
		dbDeleteUserCmd,
		dbActivateUserCmd,
		dbDeactivateUserCmd,
	)
}

// withGateway connects, runs fn and closes the pool again. When
// migrateFirst is set the schema is brought up to date before fn runs,
// which also satisfies the gateway's migration barrier.
func withGateway(cmd *cobra.Command, migrateFirst bool, fn func(gw *gateway.Gateway) error) error {
	gw, err := gateway.Connect(cmd.Context(), cfg.Database)
	if err != nil {
		return err
	}

	defer func() { _ = gw.Close() }()

	if migrateFirst {
		if _, err = gw.Migrate(cmd.Context(), Migrations()); err != nil {
			return err
		}
	}

	return fn(gw)
}

func parseUserID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Wrapf(gateway.ErrInvalidInput, "%q is not a valid user id", arg)
	}

	return id, nil
}

func printUser(cmd *cobra.Command, user *models.User) {
	cmd.Printf("%d\t%s\t%s\tactive=%t\tcreated=%s\n",
		user.ID, user.Name, user.Email, user.Active, user.CreatedAt.Format("2006-01-02 15:04:05"))
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the schema and apply pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withGateway(cmd, false, func(gw *gateway.Gateway) error {
			applied, err := gw.Migrate(cmd.Context(), Migrations())
			if err != nil {
				return err
			}

			for _, m := range applied {
				log.Info().Int64("version", m.Version).Str("name", m.Name).Msg("applied migration")
			}

			cmd.Printf("applied %d migration(s)\n", len(applied))

			return nil
		})
	},
}

var dbPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check database connectivity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withGateway(cmd, false, func(gw *gateway.Gateway) error {
			if err := gw.Ping(cmd.Context()); err != nil {
				return err
			}

			cmd.Println("pong")

			return nil
		})
	},
}

var dbCreateUserCmd = &cobra.Command{
	Use:   "create-user NAME EMAIL",
	Short: "Create a new user",
	Args:  cobra.ExactArgs(2), //nolint: mnd
	RunE: func(cmd *cobra.Command, args []string) error {
		return withGateway(cmd, true, func(gw *gateway.Gateway) error {
			user, err := gw.CreateUser(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			cmd.Printf("created user %d\n", user.ID)

			return nil
		})
	},
}

var dbGetUserCmd = &cobra.Command{
	Use:   "get-user ID",
	Short: "Show a user by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}

		return withGateway(cmd, true, func(gw *gateway.Gateway) error {
			user, err := gw.FindUserByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			if user == nil {
				cmd.Printf("no user with id %d\n", id)

				return nil
			}

			printUser(cmd, user)

			return nil
		})
	},
}

var dbListUsersCmd = &cobra.Command{
	Use:   "list-users",
	Short: "List users, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withGateway(cmd, true, func(gw *gateway.Gateway) error {
			var filter *gateway.UserFilter
			if activeOnly {
				filter = &gateway.UserFilter{ActiveOnly: true}
			}

			users, err := gw.ListUsers(cmd.Context(), filter)
			if err != nil {
				return err
			}

			for i := range users {
				printUser(cmd, &users[i])
			}

			cmd.Printf("%d user(s)\n", len(users))

			return nil
		})
	},
}

var dbDeleteUserCmd = &cobra.Command{
	Use:   "delete-user ID",
	Short: "Delete a user permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}

		return withGateway(cmd, true, func(gw *gateway.Gateway) error {
			if err := gw.DeleteUser(cmd.Context(), id); err != nil {
				return err
			}

			cmd.Printf("deleted user %d\n", id)

			return nil
		})
	},
}

var dbActivateUserCmd = &cobra.Command{
	Use:   "activate-user ID",
	Short: "Mark a user as active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}

		return withGateway(cmd, true, func(gw *gateway.Gateway) error {
			user, err := gw.ActivateUser(cmd.Context(), id)
			if err != nil {
				return err
			}

			printUser(cmd, user)

			return nil
		})
	},
}

var dbDeactivateUserCmd = &cobra.Command{
	Use:   "deactivate-user ID",
	Short: "Mark a user as inactive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}

		return withGateway(cmd, true, func(gw *gateway.Gateway) error {
			user, err := gw.DeactivateUser(cmd.Context(), id)
			if err != nil {
				return err
			}

			printUser(cmd, user)

			return nil
		})
	},
}
