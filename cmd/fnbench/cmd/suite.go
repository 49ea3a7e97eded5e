package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fnbench/fnbench/internal/report"
	"github.com/fnbench/fnbench/internal/suite"
)

var suiteTimeout float64

// suiteCmd represents the suite command
var suiteCmd = &cobra.Command{
	Use:   "suite",
	Short: "Run the timing-result conformance suite",
	Long: `Assembles and runs the conformance suite for the timing-result type: one
group exercising construction and release through the embedding boundary
(with the fake runtime brought up once for the group), and one group of pure
checks needing no runtime.`,
	RunE: runSuite,
}

func init() {
	rootCmd.AddCommand(suiteCmd)

	suiteCmd.Flags().Float64VarP(&suiteTimeout, "timeout", "t", 0, "per-test timeout in seconds (0 = config default)")
}

func runSuite(cmd *cobra.Command, args []string) error {
	timeout := suiteTimeout
	if timeout == 0 {
		timeout = cfg.SuiteTimeout
	}

	s, err := suite.NewTimeitResultSuite(timeout)
	if err != nil {
		return fmt.Errorf("failed to assemble suite: %w", err)
	}

	result := s.Run()
	report.Global().RecordSuite(result)

	if IsJSONOutput() {
		if err := json.NewEncoder(os.Stdout).Encode(result); err != nil {
			return err
		}
	} else {
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Group", "Check", "Status", "Elapsed", "Message")
		for _, c := range result.Checks {
			status := "PASS"
			if !c.Pass {
				status = "FAIL"
			}
			table.Append([]string{c.Group, c.Name, status, c.Elapsed.String(), c.Message})
		}
		table.Render()
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "suite error: %s\n", e)
		}
		fmt.Println(result.Summary())
	}

	if !result.Pass {
		return fmt.Errorf("conformance suite failed: %s", result.Summary())
	}
	return nil
}
