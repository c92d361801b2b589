package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zambezi-learn/zambezi/internal/progress"
	"github.com/zambezi-learn/zambezi/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase the signed-in user, accounts, progress and saved materials",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this erases all local data; rerun with --yes to confirm")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		docs := st.DocumentRepo()
		for _, key := range []string{store.KeyUser, store.KeyUsers, store.KeyMaterials} {
			if err := docs.Delete(ctx, key); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}
		if err := progress.NewRepo(docs, nil).Reset(ctx); err != nil {
			return err
		}
		fmt.Println("Local data erased.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm erasing all local data")
}
