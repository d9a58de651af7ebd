package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NethermindEth/starkevents/node"
	"github.com/NethermindEth/starkevents/utils"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version string

const greeting = `
     _             _                       _
 ___| |_ __ _ _ __| | _______   _____ _ __ | |_ ___
/ __| __/ _' | '__| |/ / _ \ \ / / _ \ '_ \| __/ __|
\__ \ || (_| | |  |   <  __/\ V /  __/ | | | |_\__ \
|___/\__\__,_|_|  |_|\_\___| \_/ \___|_| |_|\__|___/

starkevents %s serves Starknet events over JSON-RPC.

`

const (
	configF              = "config"
	logLevelF            = "log-level"
	colourF              = "colour"
	dbPathF              = "db-path"
	dbCacheSizeF         = "db-cache-size"
	dbMaxHandlesF        = "db-max-handles"
	httpF                = "http"
	httpHostF            = "http-host"
	httpPortF            = "http-port"
	wsF                  = "ws"
	wsHostF              = "ws-host"
	wsPortF              = "ws-port"
	metricsF             = "metrics"
	metricsHostF         = "metrics-host"
	metricsPortF         = "metrics-port"
	pprofF               = "pprof"
	pprofHostF           = "pprof-host"
	pprofPortF           = "pprof-port"
	rpcMaxScannedBlocksF = "rpc-max-scanned-blocks"
	rpcCorsEnableF       = "rpc-cors-enable"
	rpcMaxGoroutinesF    = "rpc-max-goroutines"

	defaultConfig              = ""
	defaultHost                = "localhost"
	defaultColour              = true
	defaultDBCacheSize         = 1024
	defaultDBMaxHandles        = 1024
	defaultHTTP                = false
	defaultHTTPPort            = 6060
	defaultWS                  = false
	defaultWSPort              = 6061
	defaultMetrics             = false
	defaultMetricsPort         = 9090
	defaultPprof               = false
	defaultPprofPort           = 6062
	defaultRPCMaxScannedBlocks = 0
	defaultRPCCorsEnable       = false
	defaultRPCMaxGoroutines    = 0

	configFlagUsage   = "The YAML configuration file."
	logLevelFlagUsage = "Options: debug, info, warn, error."
	colourUsage       = "Use `--colour=false` command to disable colourized outputs (ANSI Escape Codes)."
	dbPathUsage       = "Location of the database files."
	dbCacheSizeUsage  = "Determines the amount of memory (in megabytes) allocated for caching data in the database."
	dbMaxHandlesUsage = "A soft limit on the number of open files that can be used by the DB"
	httpUsage         = "Enables the HTTP RPC server on the default port and interface."
	httpHostUsage     = "The interface on which the HTTP RPC server will listen for requests."
	httpPortUsage     = "The port on which the HTTP server will listen for requests."
	wsUsage           = "Enables the Websocket RPC server on the default port."
	wsHostUsage       = "The interface on which the Websocket RPC server will listen for requests."
	wsPortUsage       = "The port on which the websocket server will listen for requests."
	metricsUsage      = "Enables the Prometheus metrics endpoint on the default port."
	metricsHostUsage  = "The interface on which the Prometheus endpoint will listen for requests."
	metricsPortUsage  = "The port on which the Prometheus endpoint will listen for requests."
	pprofUsage        = "Enables the pprof endpoint on the default port."
	pprofHostUsage    = "The interface on which the pprof HTTP server will listen for requests."
	pprofPortUsage    = "The port on which the pprof HTTP server will listen for requests."

	rpcMaxScannedBlocksUsage = "Maximum number of blocks scanned in a single starknet_getEvents call. " +
		"0 means no limit."
	rpcCorsEnableUsage    = "Enable CORS on RPC endpoints"
	rpcMaxGoroutinesUsage = "Maximum number of goroutines serving a batch request. 0 means twice GOMAXPROCS."
)

const envPrefix = "STARKEVENTS"

// defaultDBPath is ~/.starkevents, or a relative directory when no home is known.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "starkevents-db"
	}
	return filepath.Join(home, ".starkevents")
}

// NewCmd returns a command that can be executed with any of the Cobra Execute* functions.
// The RunE field is set to the user-provided run function, allowing for robust testing setups.
//
//  1. NewCmd is called with a non-nil config and a run function.
//  2. An Execute* function is called on the command returned from step 1.
//  3. The config struct is populated.
//  4. Cobra calls the run function.
func NewCmd(config *node.Config, run func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "starkevents",
		Short:   "Starknet event query node.",
		Version: Version,
		Args:    cobra.NoArgs,
		RunE:    run,
	}

	var cfgFile string

	// PreRunE populates the configuration struct from the Cobra flags and Viper configuration.
	// This is called in step 3 of the process described above.
	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), greeting, Version); err != nil {
			return err
		}

		v := viper.New()
		if cfgFile != "" {
			v.SetConfigType("yaml")
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return err
			}
		}

		v.AutomaticEnv()
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		return v.Unmarshal(config, viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc()))
	}

	// For testing purposes, these variables cannot be declared outside the function because Cobra
	// may mutate their values.
	defaultLogLevel := utils.INFO

	cmd.Flags().StringVar(&cfgFile, configF, defaultConfig, configFlagUsage)
	cmd.Flags().Var(&defaultLogLevel, logLevelF, logLevelFlagUsage)
	cmd.Flags().Bool(colourF, defaultColour, colourUsage)
	cmd.Flags().String(dbPathF, defaultDBPath(), dbPathUsage)
	cmd.Flags().Uint(dbCacheSizeF, defaultDBCacheSize, dbCacheSizeUsage)
	cmd.Flags().Int(dbMaxHandlesF, defaultDBMaxHandles, dbMaxHandlesUsage)
	cmd.Flags().Bool(httpF, defaultHTTP, httpUsage)
	cmd.Flags().String(httpHostF, defaultHost, httpHostUsage)
	cmd.Flags().Uint16(httpPortF, defaultHTTPPort, httpPortUsage)
	cmd.Flags().Bool(wsF, defaultWS, wsUsage)
	cmd.Flags().String(wsHostF, defaultHost, wsHostUsage)
	cmd.Flags().Uint16(wsPortF, defaultWSPort, wsPortUsage)
	cmd.Flags().Bool(metricsF, defaultMetrics, metricsUsage)
	cmd.Flags().String(metricsHostF, defaultHost, metricsHostUsage)
	cmd.Flags().Uint16(metricsPortF, defaultMetricsPort, metricsPortUsage)
	cmd.Flags().Bool(pprofF, defaultPprof, pprofUsage)
	cmd.Flags().String(pprofHostF, defaultHost, pprofHostUsage)
	cmd.Flags().Uint16(pprofPortF, defaultPprofPort, pprofPortUsage)
	cmd.Flags().Uint(rpcMaxScannedBlocksF, defaultRPCMaxScannedBlocks, rpcMaxScannedBlocksUsage)
	cmd.Flags().Bool(rpcCorsEnableF, defaultRPCCorsEnable, rpcCorsEnableUsage)
	cmd.Flags().Uint(rpcMaxGoroutinesF, defaultRPCMaxGoroutines, rpcMaxGoroutinesUsage)

	cmd.AddCommand(ImportCmd(defaultDBPath()), QueryCmd(defaultDBPath()), DBCmd(defaultDBPath()))

	return cmd
}
