// Package outputs renders batch evaluation results into the artifact
// formats downstream tooling consumes: a JSON document, a tab-separated
// table, and an environment-variable declaration file. All three are
// deterministic for identical inputs; features appear in sorted name
// order.
package outputs

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/rolloutgate/go-rollout-sdk/evaluation"
)

// WriteJSON writes the batch envelope as indented JSON. encoding/json
// emits map keys sorted, which keeps the results object stable.
func WriteJSON(w io.Writer, batch *evaluation.BatchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(batch)
}

// WriteTSV writes one "name\tvalue" line per feature.
func WriteTSV(w io.Writer, batch *evaluation.BatchResult) error {
	for _, name := range sortedNames(batch.Results) {
		if _, err := fmt.Fprintf(w, "%s\t%t\n", name, batch.Results[name]); err != nil {
			return err
		}
	}
	return nil
}

// WriteEnvFile writes, for each enabled feature that declares environment
// variables, a header line naming the feature followed by one
// "name\tvalue" line per variable in declaration order. Disabled features
// and features without variables contribute nothing.
func WriteEnvFile(w io.Writer, batch *evaluation.BatchResult, config *evaluation.RolloutConfig) error {
	for _, name := range sortedNames(batch.Results) {
		if !batch.Results[name] {
			continue
		}
		feature, ok := config.Features[name]
		if !ok || len(feature.EnvironmentVariables) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "# feature %s\n", name); err != nil {
			return err
		}
		for _, v := range feature.EnvironmentVariables {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", v.Name, v.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteFiles emits all three artifacts into dir as <basename>.json,
// <basename>.tsv and <basename>.env.
func WriteFiles(dir string, basename string, batch *evaluation.BatchResult, config *evaluation.RolloutConfig) error {
	if err := writeFile(filepath.Join(dir, basename+".json"), func(w io.Writer) error {
		return WriteJSON(w, batch)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, basename+".tsv"), func(w io.Writer) error {
		return WriteTSV(w, batch)
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, basename+".env"), func(w io.Writer) error {
		return WriteEnvFile(w, batch, config)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func sortedNames(results evaluation.EvaluationResult) []string {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
