package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PentesterFlow/APIHarvest/internal/auth"
	"github.com/PentesterFlow/APIHarvest/internal/output"
	"github.com/PentesterFlow/APIHarvest/internal/vault"
	"github.com/PentesterFlow/APIHarvest/pkg/pipeline"
)

var (
	version = "1.0.0"

	// Global flags
	configFile string
	verbose    bool
	debug      bool

	// Parse flags
	seedURL     string
	outputFile  string
	authOutput  string
	overlayFile string
	pretty      bool
	compact     bool
	saveVault   bool
	quiet       bool

	// Vault flags
	vaultPath   string
	publishable bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "apiharvest",
		Short: "APIHarvest - Traffic Classification and Auth Extraction",
		Long: `APIHarvest - Turn browser network captures into API endpoint inventories.

Reads a recorded capture (HAR-shaped JSON), filters out static assets and
third-party noise, groups backend API endpoints, classifies the auth scheme,
and emits a portable auth descriptor with an optional token-refresh template.`,
		Version: version,
	}

	// Parse command
	parseCmd := &cobra.Command{
		Use:   "parse [capture-file]",
		Short: "Parse a network capture",
		Long:  "Parse a capture file into an endpoint dataset and an auth descriptor.",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}

	// Auth commands
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored auth descriptors",
	}

	authListCmd := &cobra.Command{
		Use:   "ls",
		Short: "List stored services",
		RunE:  runAuthList,
	}

	authShowCmd := &cobra.Command{
		Use:   "show [service]",
		Short: "Show the descriptor for a service",
		Args:  cobra.ExactArgs(1),
		RunE:  runAuthShow,
	}

	authSaveCmd := &cobra.Command{
		Use:   "save [descriptor-file]",
		Short: "Store a descriptor file in the vault",
		Args:  cobra.ExactArgs(1),
		RunE:  runAuthSave,
	}

	authRemoveCmd := &cobra.Command{
		Use:   "rm [service]",
		Short: "Remove the descriptor for a service",
		Args:  cobra.ExactArgs(1),
		RunE:  runAuthRemove,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug mode")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", "apiharvest.db", "Descriptor vault path")

	// Parse flags
	parseCmd.Flags().StringVarP(&seedURL, "seed", "s", "", "Seed URL hinting at the target service")
	parseCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Dataset output file (default: stdout)")
	parseCmd.Flags().StringVar(&authOutput, "auth-output", "", "Auth descriptor output file")
	parseCmd.Flags().StringVar(&overlayFile, "overlay", "", "Knowledge-base overlay file (YAML or JSON)")
	parseCmd.Flags().BoolVar(&pretty, "pretty", true, "Pretty-print JSON output")
	parseCmd.Flags().BoolVar(&compact, "compact", false, "Compact JSON output")
	parseCmd.Flags().BoolVar(&saveVault, "save", false, "Save the auth descriptor to the vault")
	parseCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress the summary")

	// Auth show flags
	authShowCmd.Flags().BoolVar(&publishable, "publishable", false, "Show only the secret-free subset")

	authCmd.AddCommand(authListCmd)
	authCmd.AddCommand(authShowCmd)
	authCmd.AddCommand(authSaveCmd)
	authCmd.AddCommand(authRemoveCmd)

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(authCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read capture file: %w", err)
	}

	config := pipeline.DefaultConfig()
	if configFile != "" {
		config, err = pipeline.LoadFromFile(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config file: %w", err)
		}
	}
	config.Verbose = verbose
	config.Debug = debug
	if cmd.Flags().Changed("output") {
		config.Output.FilePath = outputFile
	}
	if cmd.Flags().Changed("pretty") {
		config.Output.Pretty = pretty
	}
	if compact {
		config.Output.Pretty = false
	}
	if overlayFile != "" {
		config.Knowledge.OverlayFile = overlayFile
	}

	h, err := pipeline.New(pipeline.WithConfig(config))
	if err != nil {
		return fmt.Errorf("failed to create harvester: %w", err)
	}

	ds, descriptor, err := h.Harvest(data, seedURL)
	if err != nil {
		return fmt.Errorf("failed to parse capture: %w", err)
	}

	if err := output.WriteFile(config.Output.FilePath, ds, config.Output.Pretty); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	if authOutput != "" {
		if err := output.WriteFile(authOutput, descriptor, config.Output.Pretty); err != nil {
			return fmt.Errorf("failed to write auth descriptor: %w", err)
		}
	}

	if saveVault {
		path := vaultPath
		if config.Vault.Path != "" {
			path = config.Vault.Path
		}
		v, err := vault.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open vault: %w", err)
		}
		defer v.Close()
		if err := v.Put(descriptor); err != nil {
			return fmt.Errorf("failed to save descriptor: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Descriptor for %s saved to %s\n", descriptor.Service, path)
	}

	if !quiet && config.Output.FilePath != "" {
		printSummary(ds, descriptor)
	}

	return nil
}

func runAuthList(cmd *cobra.Command, args []string) error {
	v, err := vault.Open(vaultPath)
	if err != nil {
		return fmt.Errorf("failed to open vault: %w", err)
	}
	defer v.Close()

	services, err := v.List()
	if err != nil {
		return err
	}
	if len(services) == 0 {
		fmt.Println("No descriptors stored")
		return nil
	}
	for _, s := range services {
		fmt.Println(s)
	}
	return nil
}

func runAuthShow(cmd *cobra.Command, args []string) error {
	v, err := vault.Open(vaultPath)
	if err != nil {
		return fmt.Errorf("failed to open vault: %w", err)
	}
	defer v.Close()

	d, err := v.Get(args[0])
	if err != nil {
		return err
	}

	if publishable {
		raw, err := json.Marshal(d)
		if err != nil {
			return err
		}
		pub, err := auth.ExtractPublishable(raw)
		if err != nil {
			return err
		}
		fmt.Println(string(pub))
		return nil
	}

	return output.NewJSONWriter(os.Stdout, true).Write(d)
}

func runAuthSave(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read descriptor file: %w", err)
	}

	d := &auth.Descriptor{}
	if err := json.Unmarshal(data, d); err != nil {
		return fmt.Errorf("failed to parse descriptor file: %w", err)
	}

	v, err := vault.Open(vaultPath)
	if err != nil {
		return fmt.Errorf("failed to open vault: %w", err)
	}
	defer v.Close()

	if err := v.Put(d); err != nil {
		return err
	}
	fmt.Printf("Descriptor for %s saved to %s\n", d.Service, vaultPath)
	return nil
}

func runAuthRemove(cmd *cobra.Command, args []string) error {
	v, err := vault.Open(vaultPath)
	if err != nil {
		return fmt.Errorf("failed to open vault: %w", err)
	}
	defer v.Close()

	if err := v.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("Removed descriptor for %s\n", args[0])
	return nil
}

func printSummary(ds *pipeline.ApiDataset, d *pipeline.AuthDescriptor) {
	fmt.Println()
	fmt.Printf("Service:     %s\n", ds.Service)
	fmt.Printf("Base URL:    %s\n", ds.BaseURL)
	fmt.Printf("Auth Method: %s\n", ds.AuthMethod)
	fmt.Printf("Requests:    %d\n", len(ds.Requests))
	fmt.Printf("Endpoints:   %d\n", len(ds.Endpoints))
	if d.Refresh != nil {
		fmt.Printf("Refresh:     %s %s\n", d.Refresh.Method, d.Refresh.Endpoint)
	}
	fmt.Println()
}
