package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fnbench/fnbench/pkg/timeunit"
)

var unitsOutput string

// unitsCmd represents the units command
var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "Inspect the recognized time units",
}

var unitsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the recognized unit labels and their scales",
	RunE:  runUnitsList,
}

var unitsCheckCmd = &cobra.Command{
	Use:   "check <label>",
	Short: "Check whether a label is a recognized unit",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnitsCheck,
}

var unitsDeriveCmd = &cobra.Command{
	Use:   "derive <seconds>",
	Short: "Derive the display unit for a per-loop time in seconds",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnitsDerive,
}

func init() {
	rootCmd.AddCommand(unitsCmd)
	unitsCmd.AddCommand(unitsListCmd)
	unitsCmd.AddCommand(unitsCheckCmd)
	unitsCmd.AddCommand(unitsDeriveCmd)

	unitsListCmd.Flags().StringVarP(&unitsOutput, "format", "f", "table", "output format: table, json, yaml")
}

type unitEntry struct {
	Unit  string  `json:"unit" yaml:"unit"`
	Scale float64 `json:"per_second" yaml:"per_second"`
}

func runUnitsList(cmd *cobra.Command, args []string) error {
	entries := make([]unitEntry, 0, len(timeunit.Units()))
	for _, u := range timeunit.Units() {
		entries = append(entries, unitEntry{
			Unit:  u,
			Scale: timeunit.Scale(timeunit.Unit(u)),
		})
	}

	switch unitsOutput {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(entries)
	case "yaml":
		data, err := yaml.Marshal(entries)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Unit", "Per Second")
		for _, e := range entries {
			table.Append([]string{e.Unit, fmt.Sprintf("%g", e.Scale)})
		}
		table.Render()
		return nil
	}
}

func runUnitsCheck(cmd *cobra.Command, args []string) error {
	label := args[0]
	if !timeunit.Validate(label) {
		return fmt.Errorf("%q is not a recognized unit (want one of %v)", label, timeunit.Units())
	}
	fmt.Printf("%s is a recognized unit\n", label)
	return nil
}

func runUnitsDerive(cmd *cobra.Command, args []string) error {
	seconds, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid seconds value %q: %w", args[0], err)
	}
	if seconds < 0 {
		return fmt.Errorf("seconds must be non-negative, got %v", seconds)
	}
	fmt.Println(timeunit.Autounit(seconds))
	return nil
}

func unitScale(unit string) float64 {
	return timeunit.Scale(timeunit.Unit(unit))
}
