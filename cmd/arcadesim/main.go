// Command arcadesim runs a YAML physics scenario headlessly and prints the
// final state of every body.
//
//	arcadesim -scenario testdata/fall.yaml
//	arcadesim -scenario level.yaml -watch
//	arcadesim -scenario level.yaml -snapshot out.msgpack
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"slices"

	"github.com/phanxgames/arcade"
)

func main() {
	path := flag.String("scenario", "", "scenario YAML file")
	watch := flag.Bool("watch", false, "re-run the scenario whenever the file changes")
	snapshot := flag.String("snapshot", "", "write the final world snapshot (msgpack) to this file")
	debug := flag.Bool("debug", false, "log per-step timing to stderr")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	opts := options{snapshot: *snapshot, debug: *debug}
	if err := run(*path, os.Stdout, opts); err != nil {
		if !*watch {
			log.Fatal(err)
		}
		log.Print(err)
	}
	if !*watch {
		return
	}

	w, err := newWatcher(*path)
	if err != nil {
		log.Fatalf("watch %s: %v", *path, err)
	}
	defer w.Close()
	log.Printf("watching %s", *path)
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return
			}
			if err := run(*path, os.Stdout, opts); err != nil {
				log.Print(err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		}
	}
}

type options struct {
	snapshot string
	debug    bool
}

// run loads and runs one scenario file, printing the result to out.
func run(path string, out io.Writer, opts options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scenario: %w", err)
	}
	sc, err := arcade.LoadScenario(data)
	if err != nil {
		return err
	}
	sim, err := sc.Build()
	if err != nil {
		return err
	}
	sim.World.SetDebugMode(opts.debug)
	res := sim.Run()
	printResult(out, res)

	if opts.snapshot != "" {
		enc, err := sim.World.Snapshot().Marshal()
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.snapshot, enc, 0o644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}
	return nil
}

func printResult(out io.Writer, res arcade.ScenarioResult) {
	fmt.Fprintf(out, "frames=%d steps=%d\n", res.Frames, res.Steps)
	for _, name := range res.Order {
		st := res.Bodies[name]
		fmt.Fprintf(out, "%-12s pos=(%.2f, %.2f) vel=(%.2f, %.2f) blocked=%s\n",
			name, st.Position.X, st.Position.Y, st.Velocity.X, st.Velocity.Y, edgeString(st.Blocked))
	}
	for _, name := range slices.Sorted(maps.Keys(res.Collisions)) {
		fmt.Fprintf(out, "collider %-12s %d\n", name, res.Collisions[name])
	}
}

func edgeString(e arcade.Edges) string {
	if e.None() {
		return "-"
	}
	s := ""
	if e.Up {
		s += "U"
	}
	if e.Down {
		s += "D"
	}
	if e.Left {
		s += "L"
	}
	if e.Right {
		s += "R"
	}
	return s
}
