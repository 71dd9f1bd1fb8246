// FILE: lixenwraith/params/example/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/params"
)

// JobParams declares the parameters of the job through struct tags. Non-zero
// field values are the defaults.
type JobParams struct {
	Name    string        `params:"name,required" desc:"job name"`
	Workers int           `params:"workers" desc:"number of workers"`
	Timeout time.Duration `params:"timeout" desc:"per-item timeout in nanoseconds"`
	Tags    []string      `params:"tags,single" desc:"labels attached to the output"`
	Store   struct {
		Path     string `params:"path" desc:"output directory"`
		Compress bool   `params:"compress"`
	} `params:"store"`
}

func main() {
	dir, err := os.MkdirTemp("", "params-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	// A parameter file selected through the input data
	inputPath := filepath.Join(dir, "job.yaml")
	if err := os.WriteFile(inputPath, []byte("name: nightly\nworkers: 8\nstore:\n  compress: true\n"), 0644); err != nil {
		log.Fatal(err)
	}

	defaults := JobParams{Workers: 2, Timeout: 5 * time.Second}
	defaults.Store.Path = "/var/lib/job"

	var job JobParams
	err = params.NewBuilder().
		WithDefaults(defaults).
		WithSources(params.NewJSONSource, params.NewYAMLSource).
		WithInputData(params.Tree{"input_yaml": inputPath}).
		WithArgs([]string{"--workers", "16", "--tags", "['a', 'b']"}).
		BuildAndScan(&job)
	if err != nil {
		log.Fatalf("resolve parameters: %v", err)
	}
	fmt.Printf("job: %+v\n", job)

	// The same resolution, keeping the parser for provenance and output
	p := params.NewBuilder().
		WithDefaults(defaults).
		WithSources(params.NewYAMLSource).
		WithInputData(params.Tree{"input_yaml": inputPath}).
		WithArgs([]string{"--workers", "16"}).
		MustBuild()
	fmt.Print(p.Debug())

	sink, err := params.ConfigureSink(params.NewJSONSink(), params.Tree{
		"output_json":        filepath.Join(dir, "out", "result.json"),
		"output_json_indent": 2,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := p.OutputTo(context.Background(), params.Tree{"processed": 42}, sink); err != nil {
		log.Fatal(err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "out", "result.json"))
	fmt.Printf("output: %s\n", data)
}
