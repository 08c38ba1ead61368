package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codalotl/retransdiff/internal/config"
)

func (a *app) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change settings stored in the database",
		Long: `Show and change settings.

Values resolve from defaults, then the config file, then the database, then RETRANSDIFF_* environment variables. "set" and "unset" change the database layer, which only
holds default_lang and granularity.`,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show every resolved setting and where it came from",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			for _, e := range a.cfg.Entries() {
				fmt.Fprintf(a.out, "%s = %s (%s)\n", e.Key, e.Value, e.Provenance)
			}
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get KEY",
		Short: "Print one resolved setting",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			v, ok := a.cfg.Get(args[0])
			if !ok {
				return usageErrorf("unknown setting %q", args[0])
			}
			fmt.Fprintln(a.out, v)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store a setting in the database",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !config.IsSettingKey(key) {
				return usageErrorf("%q cannot be stored in the database (want one of %v)", key, config.SettingKeys)
			}
			if err := config.ValidateSetting(key, value); err != nil {
				return usageError{err: err}
			}
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			if err := a.store.SetSetting(cmd.Context(), key, value); err != nil {
				return err
			}
			if p := a.cfg.Provenance(key); p.Source == config.SourceEnv {
				fmt.Fprintf(a.err, "warning: %s is overridden by %s\n", key, p.Identifier)
			}
			fmt.Fprintf(a.out, "%s = %s\n", key, value)
			return nil
		},
	}

	unset := &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a setting from the database",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !config.IsSettingKey(key) {
				return usageErrorf("%q cannot be stored in the database (want one of %v)", key, config.SettingKeys)
			}
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			deleted, err := a.store.DeleteSetting(cmd.Context(), key)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintf(a.out, "%s was not set\n", key)
				return nil
			}
			fmt.Fprintf(a.out, "unset %s\n", key)
			return nil
		},
	}

	cmd.AddCommand(list, get, set, unset)
	return cmd
}
