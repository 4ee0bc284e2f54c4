package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/scaffold"
)

var initName string

var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Write a starter data.json and folio.yml",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		name := initName
		if name == "" {
			name = filepath.Base(filepath.Clean(dir))
		}
		data, err := scaffold.NewData(name)
		if err != nil {
			return err
		}
		created, err := scaffold.Write(dir, data)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, p := range created {
			fmt.Fprintf(out, "  created %s\n", p)
		}
		fmt.Fprintf(out, "\nNext: cd %s && folio serve\n", dir)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "site and owner name (defaults to the directory name)")
	rootCmd.AddCommand(initCmd)
}
