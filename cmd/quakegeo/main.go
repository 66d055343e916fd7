package main

import (
	"bufio"
	"fmt"
	"math"
	"math/rand"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kass/go-quake-geo/internal/config"
	"github.com/kass/go-quake-geo/pkg/geo"
	"github.com/kass/go-quake-geo/pkg/index"
	"github.com/kass/go-quake-geo/pkg/models"
	"github.com/kass/go-quake-geo/pkg/postgis"
)

var (
	configFile string
	verbose    bool
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "quakegeo",
	Short: "Coordinate geometry toolkit for seismic hazard computation",
	Long: `Great-circle geometry on trace and site data: distances, azimuths,
projections, trace resampling and partitioning, plus R-Tree and PostGIS
backed spatial queries over hazard sites.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

		cfg = config.Default()
		if configFile != "" {
			loaded, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = loaded
		}
		return nil
	},
}

var distanceCmd = &cobra.Command{
	Use:   "distance <point> <point>",
	Short: "Measure distance and azimuth between two points",
	Long: `Compute separations between two points given as lon,lat,depth
tuples: great-circle surface distance, its fast approximation, the
3D linear distance, vertical separation and initial bearing.`,
	Args: cobra.ExactArgs(2),
	RunE: runDistance,
}

var projectCmd = &cobra.Command{
	Use:   "project <point>",
	Short: "Project a point along an azimuth",
	Args:  cobra.ExactArgs(1),
	RunE:  runProject,
}

var resampleCmd = &cobra.Command{
	Use:   "resample <trace>",
	Short: "Resample a trace to uniform point spacing",
	Long: `Redistribute the points of a trace (space-separated lon,lat,depth
tuples) at uniform spacing along its length. The spacing is adjusted
down so the trace length divides evenly; the original endpoints are
preserved exactly.`,
	Args: cobra.ExactArgs(1),
	RunE: runResample,
}

var partitionCmd = &cobra.Command{
	Use:   "partition <trace>",
	Short: "Partition a trace into equal-length sub-traces",
	Args:  cobra.ExactArgs(1),
	RunE:  runPartition,
}

var filterCmd = &cobra.Command{
	Use:   "filter <point> [file]",
	Short: "Filter points within a radius of a center",
	Long: `Read lon,lat,depth tuples (whitespace-delimited, from a file or
stdin) and print those within the search radius of the center point.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFilter,
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build and query the in-memory R-Tree site index",
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Load random sites into the index and save it",
	RunE:  runIndexBuild,
}

var indexQueryCmd = &cobra.Command{
	Use:   "query <point>",
	Short: "Query the saved index around a point",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexQuery,
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the PostGIS site store",
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the sites schema and spatial index",
	RunE:  runDBInit,
}

var dbLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Bulk-insert random sites into the store",
	RunE:  runDBLoad,
}

var dbQueryCmd = &cobra.Command{
	Use:   "query <point>",
	Short: "Query stored sites around a point",
	Args:  cobra.ExactArgs(1),
	RunE:  runDBQuery,
}

var (
	azimuth      float64
	horizontal   float64
	vertical     float64
	spacing      float64
	partLength   float64
	numSites     int
	searchRadius float64
	numNeighbors int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	projectCmd.Flags().Float64VarP(&azimuth, "azimuth", "a", 0, "Azimuth in degrees clockwise from north")
	projectCmd.Flags().Float64VarP(&horizontal, "distance", "d", 10, "Horizontal distance in km")
	projectCmd.Flags().Float64Var(&vertical, "vertical", 0, "Vertical (downward) distance in km")

	resampleCmd.Flags().Float64VarP(&spacing, "spacing", "s", 0, "Target point spacing in km (default from config)")
	partitionCmd.Flags().Float64VarP(&partLength, "length", "l", 0, "Target sub-trace length in km (default from config)")
	filterCmd.Flags().Float64VarP(&searchRadius, "radius", "r", 50.0, "Search radius in km")

	indexBuildCmd.Flags().IntVarP(&numSites, "sites", "n", 1000000, "Number of sites to generate")
	indexQueryCmd.Flags().Float64VarP(&searchRadius, "radius", "r", 50.0, "Search radius in km")
	indexQueryCmd.Flags().IntVarP(&numNeighbors, "neighbors", "k", 0, "Return the k nearest sites instead of a radius search")

	dbLoadCmd.Flags().IntVarP(&numSites, "sites", "n", 100000, "Number of sites to generate")
	dbQueryCmd.Flags().Float64VarP(&searchRadius, "radius", "r", 50.0, "Search radius in km")

	indexCmd.AddCommand(indexBuildCmd, indexQueryCmd)
	dbCmd.AddCommand(dbInitCmd, dbLoadCmd, dbQueryCmd)
	rootCmd.AddCommand(distanceCmd, projectCmd, resampleCmd, partitionCmd, filterCmd, indexCmd, dbCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDistance(cmd *cobra.Command, args []string) error {
	p1, err := geo.ParsePoint(args[0])
	if err != nil {
		return err
	}
	p2, err := geo.ParsePoint(args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Surface distance:  %.4f km\n", geo.HorzDistance(p1, p2))
	fmt.Printf("Fast approximation: %.4f km\n", geo.HorzDistanceFast(p1, p2))
	fmt.Printf("Linear distance:   %.4f km\n", geo.LinearDistance(p1, p2))
	fmt.Printf("Vertical distance: %.4f km\n", geo.VertDistance(p1, p2))
	fmt.Printf("Azimuth:           %.4f°\n", geo.Azimuth(p1, p2))
	return nil
}

func runProject(cmd *cobra.Command, args []string) error {
	p, err := geo.ParsePoint(args[0])
	if err != nil {
		return err
	}

	v := geo.NewVector(azimuth*math.Pi/180, horizontal, vertical)
	projected := geo.ProjectVector(p, v)
	fmt.Println(projected)
	return nil
}

func runResample(cmd *cobra.Command, args []string) error {
	trace, err := geo.ParseTrace(args[0])
	if err != nil {
		return err
	}

	s := spacing
	if s == 0 {
		s = cfg.Geometry.ResampleSpacing
	}

	resampled, err := trace.Resample(s)
	if err != nil {
		return err
	}

	log.Debug().
		Int("points_in", trace.Size()).
		Int("points_out", resampled.Size()).
		Float64("length_km", resampled.Length()).
		Msg("resampled trace")

	fmt.Println(resampled)
	return nil
}

func runPartition(cmd *cobra.Command, args []string) error {
	trace, err := geo.ParseTrace(args[0])
	if err != nil {
		return err
	}

	l := partLength
	if l == 0 {
		l = cfg.Geometry.PartitionLength
	}

	parts, err := trace.Partition(l)
	if err != nil {
		return err
	}

	log.Debug().
		Float64("total_km", trace.Length()).
		Int("partitions", len(parts)).
		Msg("partitioned trace")

	for _, p := range parts {
		fmt.Println(p)
	}
	return nil
}

func runFilter(cmd *cobra.Command, args []string) error {
	center, err := geo.ParsePoint(args[0])
	if err != nil {
		return err
	}

	in := os.Stdin
	if len(args) == 2 {
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("failed to open points file: %w", err)
		}
		defer f.Close()
		in = f
	}

	accept := geo.DistanceAndRectangleFilter(center, searchRadius)

	kept, total := 0, 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		for _, field := range strings.Fields(scanner.Text()) {
			p, err := geo.ParsePoint(field)
			if err != nil {
				return err
			}
			total++
			if accept(p) {
				fmt.Println(p)
				kept++
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read points: %w", err)
	}

	log.Debug().Int("kept", kept).Int("total", total).
		Float64("radius_km", searchRadius).Msg("filtered points")
	return nil
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	log.Info().Int("sites", numSites).Int("workers", runtime.NumCPU()).
		Msg("generating and indexing sites")

	sites := generateRandomSites(numSites)
	idx := index.NewSiteIndex()

	start := time.Now()
	if err := idx.IndexSites(sites); err != nil {
		return fmt.Errorf("failed to index sites: %w", err)
	}
	elapsed := time.Since(start)

	log.Info().
		Int64("indexed", idx.Size()).
		Dur("elapsed", elapsed).
		Float64("sites_per_sec", float64(numSites)/elapsed.Seconds()).
		Msg("index built")

	if err := idx.SaveToFile(cfg.Index.File); err != nil {
		return fmt.Errorf("failed to save index: %w", err)
	}
	log.Info().Str("file", cfg.Index.File).Msg("index saved")
	return nil
}

func runIndexQuery(cmd *cobra.Command, args []string) error {
	center, err := geo.ParsePoint(args[0])
	if err != nil {
		return err
	}

	idx := index.NewSiteIndex()
	if err := idx.LoadFromFile(cfg.Index.File); err != nil {
		return fmt.Errorf("failed to load index: %w", err)
	}
	log.Debug().Int64("sites", idx.Size()).Str("file", cfg.Index.File).Msg("index loaded")

	var results []models.Site
	if numNeighbors > 0 {
		results = idx.Nearest(center, numNeighbors)
	} else {
		results, err = idx.SearchRadius(center, searchRadius)
		if err != nil {
			return err
		}
	}

	printSites(center, results)
	return nil
}

func runDBInit(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitSchema(); err != nil {
		return err
	}
	log.Info().Msg("schema initialized")
	return nil
}

func runDBLoad(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sites := generateRandomSites(numSites)

	start := time.Now()
	if err := store.BulkInsert(sites); err != nil {
		return err
	}
	log.Info().Int("sites", numSites).Dur("elapsed", time.Since(start)).Msg("sites inserted")

	if err := store.CreateSpatialIndex(); err != nil {
		return err
	}

	count, err := store.Count()
	if err != nil {
		return err
	}
	log.Info().Int64("total", count).Msg("store ready")
	return nil
}

func runDBQuery(cmd *cobra.Command, args []string) error {
	center, err := geo.ParsePoint(args[0])
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.QueryRadius(center, searchRadius)
	if err != nil {
		return err
	}

	printSites(center, results)
	return nil
}

func openStore() (*postgis.SiteStore, error) {
	db := cfg.Database
	store, err := postgis.Open(db.Host, db.Port, db.User, db.Password, db.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to store: %w", err)
	}
	return store, nil
}

func printSites(center geo.Point, sites []models.Site) {
	fmt.Printf("Found %d sites\n", len(sites))
	for _, s := range sites {
		p, err := s.Point()
		if err != nil {
			continue
		}
		fmt.Printf("%-12s %s  %.3f km\n", s.ID, p, geo.HorzDistance(center, p))
	}
}

// generateRandomSites builds n sites in parallel, concentrated around
// seismically active regions.
func generateRandomSites(n int) []models.Site {
	sites := make([]models.Site, n)

	numWorkers := runtime.NumCPU()
	batchSize := n / numWorkers
	if batchSize < 1 {
		batchSize = 1
		numWorkers = n
	}

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		startIdx := w * batchSize
		endIdx := startIdx + batchSize
		if w == numWorkers-1 {
			endIdx = n
		}

		go func(start, end int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(start)))

			for i := start; i < end; i++ {
				var lat, lon float64

				switch r.Intn(5) {
				case 0: // western North America
					lat = r.Float64()*30 + 30
					lon = r.Float64()*30 - 125
				case 1: // Mediterranean and Anatolia
					lat = r.Float64()*12 + 34
					lon = r.Float64()*50 - 10
				case 2: // Japan and Kuriles
					lat = r.Float64()*20 + 30
					lon = r.Float64()*20 + 130
				case 3: // Andes
					lat = r.Float64()*45 - 50
					lon = r.Float64()*10 - 75
				default:
					lat = r.Float64()*180 - 90
					lon = r.Float64()*360 - 180
				}

				sites[i] = models.Site{
					ID:    fmt.Sprintf("site_%d", i),
					Lat:   lat,
					Lon:   lon,
					Depth: r.Float64() * 20,
				}
			}
		}(startIdx, endIdx)
	}

	wg.Wait()
	return sites
}
