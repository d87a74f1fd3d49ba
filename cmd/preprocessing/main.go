package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/lintang-b-s/roadnav/pkg/graph"
	"github.com/lintang-b-s/roadnav/pkg/kv"
	"github.com/lintang-b-s/roadnav/pkg/logger"
	"github.com/lintang-b-s/roadnav/pkg/osmparser"
	"go.uber.org/zap"
)

var (
	mapFile    = flag.String("f", "solo_jogja.osm.pbf", "openstreetmap file (.osm.pbf, .osm or .xml) of the road network")
	outFile    = flag.String("o", "graph.json", "output graph json file, empty skips writing")
	dbDir      = flag.String("db", "", "badger directory, when set the graph is also saved there")
	name       = flag.String("name", "default", "name of the saved graph in -db")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	log, err := logger.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if *cpuprofile != "" {
		// https://go.dev/blog/pprof
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("create cpu profile", zap.Error(err))
		}
		defer f.Close()

		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log); err != nil {
		log.Error("preprocessing failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *zap.Logger) error {
	log.Info("reading osm file", zap.String("file", *mapFile))
	osmParser := osmparser.NewOSMParser(log)
	snap, err := osmParser.ParseFile(ctx, *mapFile)
	if err != nil {
		return fmt.Errorf("parse %s: %w", *mapFile, err)
	}

	g, err := graph.FromSnapshot(snap)
	if err != nil {
		return err
	}
	st := g.Stats()
	ps := osmParser.Stats()
	log.Info("road network built",
		zap.Int("nodes", st.Nodes),
		zap.Int("edges", st.Edges),
		zap.Int("one_way_edges", st.OneWayEdges),
		zap.Int("components", st.Components),
		zap.Int("largest_component", st.LargestComponent),
		zap.Float64("total_length_m", st.TotalLength),
		zap.Int("missing_nodes", ps.MissingNodes),
		zap.Int("pois", ps.POIs))

	if *outFile != "" {
		data, err := g.ExportJSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(*outFile, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", *outFile, err)
		}
		log.Info("graph written", zap.String("file", *outFile), zap.Int("bytes", len(data)))
	}

	if *dbDir != "" {
		kvDB, err := kv.OpenKVDB(*dbDir, log)
		if err != nil {
			return err
		}
		defer kvDB.Close()

		meta, err := kvDB.SaveSnapshot(ctx, *name, g.Snapshot())
		if err != nil {
			return err
		}
		log.Info("graph saved", zap.String("name", meta.Name), zap.Int("bytes", meta.Size))
	}
	return nil
}
