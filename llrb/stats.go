package llrb

import "sync/atomic"

import gohumanize "github.com/dustin/go-humanize"
import "github.com/bnclabs/ordmap/lib"

// Stats implement api.IndexMeta interface. Cheap to compute, does not
// walk the tree.
func (llrb *LLRB[K, V]) Stats() map[string]interface{} {
	stats := make(map[string]interface{})
	for key, value := range llrb.counters() {
		stats[key] = value
	}
	stats["h_upsertdepth"] = llrb.h_upsertdepth.Fullstats()
	stats["a_rotations"] = llrb.a_rotations.Stats()
	return stats
}

// Fullstats implement api.IndexMeta interface. Walk the full tree to
// compute the height histogram and black height.
func (llrb *LLRB[K, V]) Fullstats() map[string]interface{} {
	stats := llrb.Stats()
	h_height := lib.NewhistorgramInt64(1, 256, 1)
	heightstats(llrb.root, 1 /*depth*/, h_height)
	stats["h_height"] = h_height.Fullstats()
	stats["n_blacks"] = llrb.root.countblacks()
	stats["height"] = llrb.Height()
	return stats
}

// Log implement api.IndexMeta interface.
func (llrb *LLRB[K, V]) Log(humanize bool) {
	stats := llrb.Fullstats()

	if humanize {
		fmsg := "%v entries %v, inserts %v updates %v deletes %v\n"
		infof(
			fmsg, llrb.logprefix,
			gohumanize.Comma(stats["n_count"].(int64)),
			gohumanize.Comma(stats["n_inserts"].(int64)),
			gohumanize.Comma(stats["n_updates"].(int64)),
			gohumanize.Comma(stats["n_deletes"].(int64)))
		fmsg = "%v lookups %v ranges %v, rotations %v flips %v\n"
		infof(
			fmsg, llrb.logprefix,
			gohumanize.Comma(stats["n_lookups"].(int64)),
			gohumanize.Comma(stats["n_ranges"].(int64)),
			gohumanize.Comma(stats["n_rotations"].(int64)),
			gohumanize.Comma(stats["n_flips"].(int64)))
		fmsg = "%v height %v blacks %v, up since %v\n"
		infof(
			fmsg, llrb.logprefix, stats["height"], stats["n_blacks"],
			gohumanize.Time(llrb.borntime))
	}

	// log statistics
	infof("%v stats %v\n", llrb.logprefix, lib.Prettystats(stats, false))
}

func (llrb *LLRB[K, V]) counters() map[string]int64 {
	return map[string]int64{
		"n_count":     atomic.LoadInt64(&llrb.n_count),
		"n_lookups":   atomic.LoadInt64(&llrb.n_lookups),
		"n_ranges":    atomic.LoadInt64(&llrb.n_ranges),
		"n_inserts":   atomic.LoadInt64(&llrb.n_inserts),
		"n_updates":   atomic.LoadInt64(&llrb.n_updates),
		"n_deletes":   atomic.LoadInt64(&llrb.n_deletes),
		"n_rotations": atomic.LoadInt64(&llrb.n_rotations),
		"n_flips":     atomic.LoadInt64(&llrb.n_flips),
	}
}

func heightstats[K, V any](nd *node[K, V], depth int64, h *lib.HistogramInt64) {
	if nd == nil {
		return
	}
	h.Add(depth)
	heightstats(nd.left, depth+1, h)
	heightstats(nd.right, depth+1, h)
}
