package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/calories/internal/app"
	"github.com/idilsaglam/calories/internal/config"
	"github.com/idilsaglam/calories/internal/model"
	"github.com/idilsaglam/calories/internal/ui"
)

// openView starts a session on a fresh printing view.
func openView(deps *Deps) (*printView, error) {
	v := &printView{}
	if _, err := deps.session(v); err != nil {
		return nil, err
	}
	return v, nil
}

func parseID(cmd *cobra.Command, s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, usageErr(cmd, fmt.Errorf("not an item id: %s", s))
	}
	return id, nil
}

func NewAddCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME... CALORIES",
		Short: "add a meal or food item",
		Long:  "Add an item. Every argument but the last is the name; the last is the calorie count.",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openView(deps)
			if err != nil {
				return err
			}
			in := app.FormInput{
				Name:         strings.Join(args[:len(args)-1], " "),
				CaloriesText: args[len(args)-1],
			}
			if err := v.submit(app.Action{Kind: app.ActionAdd}, in); err != nil {
				return err
			}
			if it, ok := v.last(); ok {
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added #%d %s (%d Calories)", it.ID, it.Name, it.Calories))
			}
			v.render(cmd.OutOrStdout(), deps.Config.UI.DailyGoal)
			return nil
		},
	}
}

func NewListCmd(deps *Deps) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "ls",
		Short:   "list items and the total",
		Aliases: []string{"list"},
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openView(deps)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				items := v.items
				if items == nil {
					items = []model.Item{}
				}
				return enc.Encode(items)
			}
			v.render(cmd.OutOrStdout(), deps.Config.UI.DailyGoal)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print items as JSON")
	return cmd
}

func NewEditCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID NAME CALORIES",
		Short: "change an item's name and calories",
		Args:  usageArgs(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(cmd, args[0])
			if err != nil {
				return err
			}
			v, err := openView(deps)
			if err != nil {
				return err
			}
			if err := v.dispatcher.Dispatch(app.Action{Kind: app.ActionBeginEdit, ID: id}); err != nil {
				return err
			}
			in := app.FormInput{Name: args[1], CaloriesText: args[2]}
			if err := v.submit(app.Action{Kind: app.ActionCommitEdit}, in); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("updated #%d", id))
			v.render(cmd.OutOrStdout(), deps.Config.UI.DailyGoal)
			return nil
		},
	}
}

func NewRemoveCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Short:   "delete an item",
		Aliases: []string{"remove"},
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(cmd, args[0])
			if err != nil {
				return err
			}
			v, err := openView(deps)
			if err != nil {
				return err
			}
			if err := v.dispatcher.Dispatch(app.Action{Kind: app.ActionBeginEdit, ID: id}); err != nil {
				return err
			}
			if err := v.dispatcher.Dispatch(app.Action{Kind: app.ActionDelete}); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("deleted #%d", id))
			v.render(cmd.OutOrStdout(), deps.Config.UI.DailyGoal)
			return nil
		},
	}
}

func NewClearCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "delete every item",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openView(deps)
			if err != nil {
				return err
			}
			if err := v.dispatcher.Dispatch(app.Action{Kind: app.ActionClear}); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "all items cleared")
			return nil
		},
	}
}

func NewTotalCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "print total calories",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openView(deps)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.TotalLine(v.total, deps.Config.UI.DailyGoal))
			return nil
		},
	}
}

func NewConfigCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration",
		// config init must work before any config file exists
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [PATH]",
		Short: "write the default configuration",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := defaultConfigPath(deps, args)
			if err != nil {
				return err
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "wrote "+path)
			return nil
		},
	})
	return cmd
}

func defaultConfigPath(deps *Deps, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if deps.ConfigPath != "" {
		return deps.ConfigPath, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, "calories", "config.yaml"), nil
}
