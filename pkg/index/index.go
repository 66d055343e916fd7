// Package index provides a thread-safe R-Tree index over hazard Sites
// for fast spatial queries, with goroutine-parallelized bulk loading.
package index

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dhconnelly/rtreego"

	"github.com/kass/go-quake-geo/pkg/geo"
	"github.com/kass/go-quake-geo/pkg/models"
)

const (
	rectTolerance = 0.01
	minChildren   = 25
	maxChildren   = 50
	dimensions    = 2
)

// spatialSite wraps a Site and its validated point for R-Tree indexing.
type spatialSite struct {
	site  models.Site
	point geo.Point
	rect  *rtreego.Rect
}

func (s *spatialSite) Bounds() *rtreego.Rect {
	return s.rect
}

// SiteIndex is a thread-safe R-Tree based spatial index of Sites.
type SiteIndex struct {
	tree      *rtreego.Rtree
	mu        sync.RWMutex
	itemCount atomic.Int64
}

// NewSiteIndex returns an empty index.
func NewSiteIndex() *SiteIndex {
	return &SiteIndex{
		tree: rtreego.NewTree(dimensions, minChildren, maxChildren),
	}
}

// Insert adds a single site to the index. Returns an error if the site
// carries out-of-domain coordinates.
func (x *SiteIndex) Insert(site models.Site) error {
	p, err := site.Point()
	if err != nil {
		return fmt.Errorf("site %q: %w", site.ID, err)
	}
	rtPoint := rtreego.Point{site.Lat, site.Lon}

	x.mu.Lock()
	defer x.mu.Unlock()

	x.tree.Insert(&spatialSite{site, p, rtPoint.ToRect(rectTolerance)})
	x.itemCount.Add(1)
	return nil
}

// IndexSites indexes a batch of sites, preparing entries in parallel
// across CPU cores. Returns an error if any site carries out-of-domain
// coordinates; no sites are inserted in that case.
func (x *SiteIndex) IndexSites(sites []models.Site) error {
	if len(sites) == 0 {
		return nil
	}

	numCPU := runtime.NumCPU()
	entries := make([]rtreego.Spatial, len(sites))
	errs := make([]error, numCPU)
	var wg sync.WaitGroup

	batchSize := len(sites) / numCPU
	if batchSize < 1 {
		batchSize = 1
		numCPU = len(sites)
	}

	for i := 0; i < numCPU && i*batchSize < len(sites); i++ {
		wg.Add(1)
		start := i * batchSize
		end := start + batchSize
		if i == numCPU-1 || end > len(sites) {
			end = len(sites)
		}

		go func(worker, start, end int) {
			defer wg.Done()
			for j := start; j < end; j++ {
				site := sites[j]
				p, err := site.Point()
				if err != nil {
					errs[worker] = fmt.Errorf("site %q: %w", site.ID, err)
					return
				}
				rtPoint := rtreego.Point{site.Lat, site.Lon}
				entries[j] = &spatialSite{site, p, rtPoint.ToRect(rectTolerance)}
			}
		}(i, start, end)
	}

	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	// Tree insertion must be synchronized
	x.mu.Lock()
	defer x.mu.Unlock()

	count := int64(0)
	for _, e := range entries {
		if e != nil {
			x.tree.Insert(e)
			count++
		}
	}
	x.itemCount.Add(count)
	return nil
}

// SearchBox returns all sites within the bounding box defined by
// bottom-left (latBL, lonBL) and top-right (latTR, lonTR) corners.
func (x *SiteIndex) SearchBox(latBL, lonBL, latTR, lonTR float64) ([]models.Site, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	bottomLeft := rtreego.Point{latBL, lonBL}
	rectSize := []float64{latTR - latBL, lonTR - lonBL}

	bounds, err := rtreego.NewRect(bottomLeft, rectSize)
	if err != nil {
		return nil, fmt.Errorf("invalid bounding box: %w", err)
	}

	results := x.tree.SearchIntersect(bounds)

	// The index rects carry padding; verify candidates strictly
	sites := make([]models.Site, 0, len(results))
	for _, r := range results {
		item, ok := r.(*spatialSite)
		if !ok {
			continue
		}
		if item.site.Lat >= latBL && item.site.Lat <= latTR &&
			item.site.Lon >= lonBL && item.site.Lon <= lonTR {
			sites = append(sites, item.site)
		}
	}
	return sites, nil
}

// SearchRadius returns all sites within radius km of the supplied
// center. Candidates from an R-Tree box pass are confirmed with the
// rectangle-then-distance filter composition from the geo package.
func (x *SiteIndex) SearchRadius(center geo.Point, radius float64) ([]models.Site, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	dLat := radius * geo.DegreesLatPerKm()
	dLon := radius * geo.DegreesLonPerKm(center)
	bounds, err := rtreego.NewRect(
		rtreego.Point{center.Lat() - dLat, center.Lon() - dLon},
		[]float64{2 * dLat, 2 * dLon},
	)
	if err != nil {
		return nil, fmt.Errorf("invalid radius search: %w", err)
	}

	results := x.tree.SearchIntersect(bounds)

	accept := geo.DistanceAndRectangleFilter(center, radius)
	sites := make([]models.Site, 0, len(results))
	for _, r := range results {
		item, ok := r.(*spatialSite)
		if !ok {
			continue
		}
		if accept(item.point) {
			sites = append(sites, item.site)
		}
	}
	return sites, nil
}

// Nearest returns the n sites nearest the supplied point, closest
// first, ordered by great-circle distance.
func (x *SiteIndex) Nearest(p geo.Point, n int) []models.Site {
	x.mu.RLock()
	defer x.mu.RUnlock()

	queryPoint := rtreego.Point{p.Lat(), p.Lon()}
	results := x.tree.NearestNeighbors(n, queryPoint)

	sites := make([]models.Site, 0, len(results))
	for _, r := range results {
		if item, ok := r.(*spatialSite); ok {
			sites = append(sites, item.site)
		}
	}
	// rtreego ranks by planar degree distance; re-rank spherically
	sortByDistance(sites, p)
	return sites
}

func sortByDistance(sites []models.Site, origin geo.Point) {
	keys := make([]float64, len(sites))
	for i, s := range sites {
		p, err := s.Point()
		if err != nil {
			keys[i] = math.Inf(1)
			continue
		}
		keys[i] = geo.HorzDistance(origin, p)
	}
	sort.Sort(&byDistance{sites, keys})
}

type byDistance struct {
	sites []models.Site
	keys  []float64
}

func (b *byDistance) Len() int           { return len(b.sites) }
func (b *byDistance) Less(i, j int) bool { return b.keys[i] < b.keys[j] }
func (b *byDistance) Swap(i, j int) {
	b.sites[i], b.sites[j] = b.sites[j], b.sites[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}

// Size returns the number of sites in the index.
func (x *SiteIndex) Size() int64 {
	return x.itemCount.Load()
}

// Clear removes all sites from the index.
func (x *SiteIndex) Clear() {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.tree = rtreego.NewTree(dimensions, minChildren, maxChildren)
	x.itemCount.Store(0)
}

// all returns every indexed site. Callers must hold at least a read
// lock.
func (x *SiteIndex) all() []models.Site {
	largeBounds, _ := rtreego.NewRect(
		rtreego.Point{geo.MinLat, geo.MinLon},
		[]float64{geo.MaxLat - geo.MinLat, geo.MaxLon - geo.MinLon})
	results := x.tree.SearchIntersect(largeBounds)

	sites := make([]models.Site, 0, len(results))
	for _, r := range results {
		if item, ok := r.(*spatialSite); ok {
			sites = append(sites, item.site)
		}
	}
	return sites
}
