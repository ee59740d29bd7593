package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mderasse/go-bopi/internal/bopi"
	"github.com/mderasse/go-bopi/internal/config"
	"github.com/mderasse/go-bopi/internal/discovery"
	"github.com/mderasse/go-bopi/internal/publisher"
	"github.com/mderasse/go-bopi/internal/ui"
)

// Command flags
var (
	boxHost        string
	boxPort        int
	requestTimeout int
	outputFormat   string

	requestMethod string
	requestData   string

	scanTimeout int

	brokerURL    string
	topicPrefix  string
	pollInterval int
	mqttClientID string
)

func init() {
	// Common flags for box commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&boxHost, "host", "", "Box hostname or IP (overrides config file)")
	rootCmd.PersistentFlags().IntVar(&boxPort, "port", 0, "Box HTTP port (default 80)")
	rootCmd.PersistentFlags().IntVar(&requestTimeout, "timeout", 0, "Request timeout in seconds (default 8)")

	rootCmd.AddCommand(sensorsCmd)
	rootCmd.AddCommand(requestCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(publishCmd)
}

// newClient builds a box client from flags, falling back to the config file
func newClient() (*bopi.Client, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}

	host := boxHost
	port := boxPort
	timeout := requestTimeout

	if settings.Device != nil {
		if host == "" {
			host = settings.Device.Host
		}
		if port == 0 {
			port = settings.Device.Port
		}
		if timeout == 0 {
			timeout = settings.Device.RequestTimeout
		}
	}

	if host == "" {
		return nil, fmt.Errorf("no box configured: pass --host, or run 'bopi scan' to find one")
	}

	opts := []bopi.Option{}
	if port != 0 {
		opts = append(opts, bopi.WithPort(port))
	}
	if timeout != 0 {
		opts = append(opts, bopi.WithRequestTimeout(time.Duration(timeout)*time.Second))
	}

	return bopi.NewClient(host, opts...)
}

// sensorsCmd fetches and displays the validated sensor state
var sensorsCmd = &cobra.Command{
	Use:   "sensors",
	Short: "Show the current sensor state of the box",
	Long: `Fetch the sensor state from the box and display it.

Readings are validated and normalized: out-of-range values are rejected
and disconnected probes are shown as such rather than as the firmware's
raw sentinel value.`,
	Example: `  # Styled output
  bopi sensors --host 192.168.1.26

  # One-line summary
  bopi sensors --host 192.168.1.26 --format compact

  # JSON output for scripting
  bopi sensors --host 192.168.1.26 --format json`,
	RunE: runSensors,
}

func init() {
	sensorsCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, compact, json)")
}

func runSensors(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	state, err := client.GetSensorsState(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get sensor state: %w", err)
	}

	switch outputFormat {
	case "compact":
		fmt.Println(state.Summary())
	case "json":
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	case "detailed":
		fallthrough
	default:
		fmt.Println(ui.RenderSensorsState(state))
	}

	return nil
}

// requestCmd performs a raw API request
var requestCmd = &cobra.Command{
	Use:   "request <path>",
	Short: "Perform a raw API request against the box",
	Long: `Perform a single HTTP request against the box API and print the
decoded payload as JSON. Non-JSON responses are wrapped under a
"message" key.`,
	Example: `  # Fetch the raw sensor payload
  bopi request /allsensorsv2 --host 192.168.1.26

  # POST to an endpoint
  bopi request /calibrate --method POST --data 'target=7.0'`,
	Args: cobra.ExactArgs(1),
	RunE: runRequest,
}

func init() {
	requestCmd.Flags().StringVar(&requestMethod, "method", http.MethodGet, "HTTP method")
	requestCmd.Flags().StringVar(&requestData, "data", "", "Request body")
}

func runRequest(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	var body *strings.Reader
	if requestData != "" {
		body = strings.NewReader(requestData)
	} else {
		body = strings.NewReader("")
	}

	payload, err := client.Request(cmd.Context(), strings.ToUpper(requestMethod), args[0], nil, body)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))

	return nil
}

// scanCmd discovers boxes on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for BoPi boxes on the network",
	Long: `Scan for BoPi boxes using mDNS/DNS-SD discovery.

This command listens for mDNS broadcasts and displays all discovered
boxes with their addresses and metadata.`,
	Example: `  # Scan for 10 seconds (default)
  bopi scan

  # Quick 3-second scan
  bopi scan --scan-timeout 3`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "scan-timeout", 10, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for BoPi boxes (timeout: %ds)...\n\n", scanTimeout)

	devices, err := discovery.ScanForDevices(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No boxes found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the box is powered on and connected to your network")
		fmt.Println("  - Try increasing --scan-timeout for slower networks")
		fmt.Println("  - Use --host to specify the address manually if discovery fails")
		return nil
	}

	fmt.Printf("Found %d box(es):\n\n", len(devices))

	for i, device := range devices {
		fmt.Printf("%d. %s\n", i+1, device.Hostname)
		fmt.Printf("   IP:  %s:%d\n", device.IP, device.Port)
		if len(device.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", device.Metadata)
		}
		fmt.Println()
	}

	fmt.Println("Use 'bopi sensors --host <ip>' to read a box")

	return nil
}

// publishCmd bridges the box into MQTT
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Poll the box and publish sensor readings to MQTT",
	Long: `Poll the box sensor endpoint on a fixed interval and publish the
readings to an MQTT broker: the full state as JSON on <prefix>/sensors
plus one topic per metric. Runs until interrupted.`,
	Example: `  # Publish every 30 seconds to a local broker
  bopi publish --host 192.168.1.26 --broker tcp://localhost:1883

  # Custom topic prefix and interval
  bopi publish --broker tcp://broker.lan:1883 --topic-prefix pool --interval 60`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&brokerURL, "broker", "", "MQTT broker URL (overrides config file)")
	publishCmd.Flags().StringVar(&topicPrefix, "topic-prefix", "", "MQTT topic prefix (default \"bopi\")")
	publishCmd.Flags().IntVar(&pollInterval, "interval", 0, "Poll interval in seconds (default 30)")
	publishCmd.Flags().StringVar(&mqttClientID, "client-id", "", "MQTT client identifier")
}

func runPublish(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	settings, err := config.Load()
	if err != nil {
		return err
	}

	opts := publisher.Options{
		BrokerURL:   brokerURL,
		ClientID:    mqttClientID,
		TopicPrefix: topicPrefix,
	}
	if pollInterval > 0 {
		opts.Interval = time.Duration(pollInterval) * time.Second
	}
	if settings.MQTT != nil {
		if opts.BrokerURL == "" {
			opts.BrokerURL = settings.MQTT.Broker
		}
		if opts.ClientID == "" {
			opts.ClientID = settings.MQTT.ClientID
		}
		if opts.TopicPrefix == "" {
			opts.TopicPrefix = settings.MQTT.TopicPrefix
		}
		if opts.Interval == 0 && settings.MQTT.Interval > 0 {
			opts.Interval = time.Duration(settings.MQTT.Interval) * time.Second
		}
	}

	if opts.Interval == 0 {
		opts.Interval = publisher.DefaultInterval
	}

	pub, err := publisher.New(client, opts)
	if err != nil {
		return err
	}

	if err := pub.Connect(); err != nil {
		return err
	}
	defer pub.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Publishing sensor state from %s to %s (interval: %s). Press Ctrl+C to stop.\n",
		client.Host, opts.BrokerURL, opts.Interval)

	if err := pub.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	return nil
}
