// Package app wires configuration, the SEC client, the lookup services, and
// the MCP tool server into one App shared by the binaries.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/shyft/internal/clients/sec"
	"github.com/bobmcallan/shyft/internal/common"
	"github.com/bobmcallan/shyft/internal/interfaces"
	"github.com/bobmcallan/shyft/internal/services/lookup"
)

// App holds the initialized client, services, and MCP server.
// It is shared by cmd/shyft-server and cmd/shyft.
type App struct {
	Config        *common.Config
	Logger        *common.Logger
	SECClient     interfaces.SECClient
	LookupService interfaces.LookupService
	MCPServer     *server.MCPServer
	StartupTime   time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// resolveConfigPath checks the provided path, SHYFT_CONFIG, the binary
// directory, then config/shyft.toml.
func resolveConfigPath(configPath string) string {
	if configPath == "" {
		configPath = os.Getenv("SHYFT_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "shyft.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/shyft.toml"
		}
	}
	return configPath
}

// NewApp loads configuration and initializes everything against the live
// SEC endpoints. configPath may be empty.
func NewApp(configPath string) (*App, error) {
	config, err := common.LoadConfig(resolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	secCfg := config.Clients.SEC
	if secCfg.UserAgent == "" {
		return nil, fmt.Errorf("clients.sec.user_agent is required by the SEC fair access policy")
	}

	client := sec.NewClient(secCfg.UserAgent,
		sec.WithTickersURL(secCfg.TickersURL),
		sec.WithDataURL(secCfg.DataURL),
		sec.WithTimeout(secCfg.GetTimeout()),
		sec.WithLogger(logger),
	)

	return New(config, logger, client), nil
}

// New builds an App around an existing client. Tests use it with a mock.
func New(config *common.Config, logger *common.Logger, client interfaces.SECClient) *App {
	start := time.Now()
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	mcpServer := server.NewMCPServer(
		"shyft",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	a := &App{
		Config:        config,
		Logger:        logger,
		SECClient:     client,
		LookupService: lookup.NewService(client, config.Lookup, logger),
		MCPServer:     mcpServer,
		StartupTime:   start,
	}

	a.registerTools()

	logger.Info().Dur("startup", time.Since(start)).Msg("App initialized")
	return a
}

// registerTools registers all MCP tools on the App's MCPServer.
func (a *App) registerTools() {
	s := a.MCPServer
	logger := a.Logger

	s.AddTool(createGetVersionTool(), handleGetVersion())
	s.AddTool(createSearchCompanyTool(), handleSearchCompany(a.LookupService, logger))
	s.AddTool(createResolveTickerTool(), handleResolveTicker(a.LookupService, logger))
	s.AddTool(createGetFinancialsTool(), handleGetFinancials(a.LookupService, logger))
}
