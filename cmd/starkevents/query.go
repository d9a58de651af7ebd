package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/NethermindEth/starkevents/blockchain"
	"github.com/NethermindEth/starkevents/core/felt"
	"github.com/NethermindEth/starkevents/db"
	"github.com/NethermindEth/starkevents/utils"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const (
	fromF              = "from"
	toF                = "to"
	addressF           = "address"
	keysF              = "keys"
	chunkSizeF         = "chunk-size"
	continuationTokenF = "continuation-token"

	latest           = "latest"
	defaultChunkSize = 100

	fromUsage              = "First block of the range, a number or \"latest\"."
	toUsage                = "Last block of the range, a number or \"latest\"."
	addressUsage           = "Only return events emitted by this contract."
	keysUsage              = "One flag per key position, alternatives separated by commas. An empty value matches any key."
	chunkSizeUsage         = "Maximum number of events on the page."
	continuationTokenUsage = "Token returned by the previous page."
)

// QueryCmd prints one page of events straight from the database.
func QueryCmd(defaultDBPath string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query one page of events from the database",
		Args:  cobra.NoArgs,
		RunE:  queryEvents,
	}
	cmd.Flags().String(dbPathF, defaultDBPath, dbPathUsage)
	cmd.Flags().String(fromF, "0", fromUsage)
	cmd.Flags().String(toF, latest, toUsage)
	cmd.Flags().String(addressF, "", addressUsage)
	cmd.Flags().StringArray(keysF, nil, keysUsage)
	cmd.Flags().Uint64(chunkSizeF, defaultChunkSize, chunkSizeUsage)
	cmd.Flags().String(continuationTokenF, "", continuationTokenUsage)
	return cmd
}

func queryEvents(cmd *cobra.Command, _ []string) (err error) {
	flags := cmd.Flags()
	chunkSize, err := flags.GetUint64(chunkSizeF)
	if err != nil {
		return err
	}
	rawKeys, err := flags.GetStringArray(keysF)
	if err != nil {
		return err
	}
	keys, err := parseKeys(rawKeys)
	if err != nil {
		return err
	}

	var address *felt.Felt
	if rawAddress, _ := flags.GetString(addressF); rawAddress != "" {
		if address, err = new(felt.Felt).SetString(rawAddress); err != nil {
			return fmt.Errorf("invalid address: %w", err)
		}
	}

	var cToken *blockchain.ContinuationToken
	if raw, _ := flags.GetString(continuationTokenF); raw != "" {
		if cToken, err = blockchain.ParseContinuationToken(raw); err != nil {
			return err
		}
	}

	database, err := openDB(cmd, true)
	if err != nil {
		return err
	}
	defer db.CloseAndWrapOnError(database.Close, &err)

	chain := blockchain.New(database, utils.NewNopZapLogger())
	height, err := chain.Height()
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return errors.New("database has no blocks")
		}
		return err
	}

	rawFrom, _ := flags.GetString(fromF)
	from, err := parseBlockArg(rawFrom, height)
	if err != nil {
		return err
	}
	rawTo, _ := flags.GetString(toF)
	to, err := parseBlockArg(rawTo, height)
	if err != nil {
		return err
	}

	filter := blockchain.Filter{FromBlock: from, ToBlock: min(to, height), Address: address, Keys: keys}
	if err = blockchain.ValidateFilter(filter, chunkSize); err != nil {
		return err
	}

	filterer, err := chain.EventFilter(filter)
	if err != nil {
		return err
	}
	defer db.CloseAndWrapOnError(filterer.Close, &err)

	events, next, err := filterer.Events(cToken, chunkSize)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Block", "Tx", "Event", "From", "Keys", "Data"})
	for _, e := range events {
		table.Append([]string{
			strconv.FormatUint(e.BlockNumber, 10),
			e.TransactionHash.ShortString(),
			strconv.FormatUint(uint64(e.EventIndex), 10),
			e.From.ShortString(),
			joinFelts(e.Keys),
			joinFelts(e.Data),
		})
	}
	table.Render()

	if next == nil {
		_, err = fmt.Fprintln(out, "no more pages")
	} else {
		_, err = fmt.Fprintf(out, "continuation token: %s\n", next)
	}
	return err
}

func parseBlockArg(arg string, height uint64) (uint64, error) {
	if arg == latest {
		return height, nil
	}
	n, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid block %q: %w", arg, err)
	}
	return n, nil
}

// parseKeys turns one entry per position into the filter key sets.
func parseKeys(raw []string) ([][]felt.Felt, error) {
	keys := make([][]felt.Felt, 0, len(raw))
	for i, position := range raw {
		var set []felt.Felt
		for _, s := range strings.Split(position, ",") {
			if s = strings.TrimSpace(s); s == "" {
				continue
			}
			k, err := new(felt.Felt).SetString(s)
			if err != nil {
				return nil, fmt.Errorf("invalid key at position %d: %w", i, err)
			}
			set = append(set, *k)
		}
		keys = append(keys, set)
	}
	return keys, nil
}

func joinFelts(felts []*felt.Felt) string {
	return strings.Join(utils.Map(felts, (*felt.Felt).ShortString), " ")
}
