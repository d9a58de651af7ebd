package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/NethermindEth/starkevents/blockchain"
	"github.com/NethermindEth/starkevents/db"
	"github.com/NethermindEth/starkevents/utils"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// DBCmd groups the database inspection commands.
func DBCmd(defaultDBPath string) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database related operations",
		Args:  cobra.NoArgs,
	}
	dbCmd.PersistentFlags().String(dbPathF, defaultDBPath, dbPathUsage)
	dbCmd.AddCommand(dbInfoCmd(), dbSizeCmd())
	return dbCmd
}

func dbInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Retrieve information about the database.",
		RunE:  dbInfo,
	}
}

func dbSizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "size",
		Short: "Calculate database size information for each data type",
		Long:  `This subcommand retrieves and calculates the size of data stored in each database bucket.`,
		RunE:  dbSize,
	}
}

func dbInfo(cmd *cobra.Command, _ []string) (err error) {
	database, err := openDB(cmd, true)
	if err != nil {
		return err
	}
	defer db.CloseAndWrapOnError(database.Close, &err)

	chain := blockchain.New(database, utils.NewNopZapLogger())
	head, err := chain.Head()
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Database is empty")
			return err
		}
		return fmt.Errorf("failed to get the chain head: %w", err)
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Height", "Hash", "Parent", "Events"})
	table.Append([]string{
		strconv.FormatUint(head.Number, 10),
		head.Hash.String(),
		head.ParentHash.String(),
		strconv.FormatUint(head.EventCount, 10),
	})
	table.Render()
	return nil
}

func dbSize(cmd *cobra.Command, _ []string) (err error) {
	database, err := openDB(cmd, true)
	if err != nil {
		return err
	}
	defer db.CloseAndWrapOnError(database.Close, &err)

	stats, err := db.CollectStats(database)
	if err != nil {
		return err
	}

	var totalKeys, totalBytes uint64
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Bucket", "Keys", "Size"})
	for _, s := range stats {
		totalKeys += s.Keys
		totalBytes += s.Bytes
		table.Append([]string{s.Bucket.String(), strconv.FormatUint(s.Keys, 10), utils.DataSize(s.Bytes).String()})
	}
	table.SetFooter([]string{"Total", strconv.FormatUint(totalKeys, 10), utils.DataSize(totalBytes).String()})
	table.Render()
	return nil
}
