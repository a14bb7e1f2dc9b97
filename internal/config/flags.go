package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagField      = flag.String("field", "", "Field type: sphere, plane or terrain")
	flagLOD        = flag.Int("lod", -1, "Block LOD index")
	flagBlockSize  = flag.Int("block-size", 0, "Cells per block axis")
	flagOctahedral = flag.Bool("octahedral", false, "Use octahedral normal encoding")
	flagOut        = flag.String("out", "", "Output directory")
	flagWorkers    = flag.Int("workers", 0, "Number of compute workers (0 = NumCPU)")
	flagPreview    = flag.Bool("preview", false, "Open a GL context and materialize textures")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// Preview reports whether the -preview flag was set.
func Preview() bool {
	return *flagPreview
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagField != "" {
		cfg.Field.Type = *flagField
	}
	if *flagLOD >= 0 {
		cfg.Block.LODIndex = uint8(*flagLOD)
	}
	if *flagBlockSize > 0 {
		cfg.Block.Size = *flagBlockSize
	}
	if *flagOctahedral {
		cfg.Detail.OctahedralEncoding = true
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagWorkers > 0 {
		cfg.Workers.Count = *flagWorkers
	}
}
