package serve

import (
	cmdUtil "github.com/ValentinKolb/dDHT/cmd/util"
	"github.com/ValentinKolb/dDHT/krpc/common"
	"github.com/ValentinKolb/dDHT/krpc/server"
	"github.com/ValentinKolb/dDHT/krpc/transport/udp"
	"github.com/ValentinKolb/dDHT/lib/identity"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the DHT server",
		Long:    `Start the DHT server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is DDHT_<flag> (e.g. DDHT_ENDPOINT=0.0.0.0:6881)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(initConfig)

	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, common.DefaultServerEndpoint, cmdUtil.WrapString("The local UDP address the server binds"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, common.DefaultTimeoutSecond, cmdUtil.WrapString("Timeout in seconds for reply writes"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Optional HTTP address exposing Prometheus metrics (e.g. localhost:9090), empty disables the endpoint"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// initConfig initializes viper with env file and environment support
func initConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix("ddht")
	viper.AutomaticEnv() // read in environment variables that match
}

// processConfig reads the configuration from the command line flags and
// environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	return nil
}

// run starts the server with a freshly generated node identity
func run(_ *cobra.Command, _ []string) error {
	nodeID, err := identity.GenerateNodeID()
	if err != nil {
		return err
	}

	s := server.NewServer(
		serveCmdConfig,
		udp.NewServerTransport(),
		nodeID,
	)

	return s.Serve()
}
