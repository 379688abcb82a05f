package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/config"
	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/logger"
	"github.com/rhyrak/go-timetable/internal/pipeline"
)

func main() {
	printTT := flag.Bool("print", false, "print each timetable to stdout")
	outDir := flag.String("out", "", "output directory (overrides OUTPUT_DIR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	sc := cfg.Scheduler
	if *outDir != "" {
		sc.OutputDir = *outDir
	}

	fmt.Println("Loading...")
	in, err := pipeline.LoadInputs(sc)
	if err != nil {
		log.Fatal("load inputs", zap.Error(err))
	}
	fmt.Printf("Courses: %d, classrooms: %d, labs: %d, slots: %d\n",
		len(in.Courses), len(in.Pools.Classrooms), len(in.Pools.Labs), in.Catalog.Len())

	start := time.Now()
	run := pipeline.Generate(sc, in, log)
	took := time.Since(start)

	for i, tt := range run.Timetables {
		if *printTT {
			csvio.PrintTimetable(os.Stdout, tt)
		}
		if !run.Valid[i] {
			fmt.Printf("Invalid timetable %s:\n", tt.Name)
		} else {
			fmt.Printf("%s passed all tests\n", tt.Name)
		}
		fmt.Println(run.Reports[i])
	}

	paths, err := run.Export(sc.OutputDir, sc.OutputFormats, log)
	for _, p := range paths {
		fmt.Printf("Saved styled timetable to %s\n", p)
	}
	if err != nil {
		log.Fatal("export timetables", zap.Error(err))
	}
	fmt.Printf("Timer: %f ms\n", float64(took.Microseconds())/1000.0)
}
