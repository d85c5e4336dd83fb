package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Denizmerty/RenameUtility/pkg/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Save and recall named rename settings",
}

var profileSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the given settings under a name",
	Long: `Save the planning flags as a named profile. A saved profile can be
used with 'plan --profile <name>' or 'apply --profile <name>'.

Example:
  renameutil profile save photos --dir ./photos \
    --filename-pattern 'img_*' --naming-pattern 'pic_<num>' --increment 1
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := paramsFromFlags()
		if err != nil {
			return err
		}
		store := profile.NewStore(cfg.DataDir)
		if err := store.Save(args[0], params); err != nil {
			return err
		}
		fmt.Printf("Profile %q saved.\n", args[0])
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := profile.NewStore(cfg.DataDir)
		params, err := store.Load(args[0])
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(params)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := profile.NewStore(cfg.DataDir)
		names, err := store.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No profiles saved.")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := profile.NewStore(cfg.DataDir)
		if err := store.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Profile %q deleted.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileDeleteCmd)

	addParamsFlags(profileSaveCmd)
}
