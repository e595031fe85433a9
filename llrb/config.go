package llrb

import s "github.com/bnclabs/gosettings"

// Defaultsettings for llrb instance.
//
// "put.zerodelete" (bool, default: false),
//		If true, Put with the zero value of V shall delete the key
//		instead of storing the zero value. Legacy behaviour, leave this
//		disabled unless byte-for-byte parity with older users is needed.
//
// "stats.depth" (bool, default: true),
//		Book-keep depth of every insert and update in a histogram,
//		reported as "h_upsertdepth".
//
// "validate.height" (bool, default: true),
//		Validate() shall check that height does not exceed
//		2*log2(n+1).
//
// "validate.rank" (bool, default: true),
//		Validate() shall check rank(select(i)) == i for every entry.
//		This is O(n log n) and can be disabled for large trees.
//
func Defaultsettings() s.Settings {
	return s.Settings{
		"put.zerodelete":  false,
		"stats.depth":     true,
		"validate.height": true,
		"validate.rank":   true,
	}
}

func (llrb *LLRB[K, V]) readsettings(setts s.Settings) {
	llrb.zerodelete = setts.Bool("put.zerodelete")
	llrb.depthstats = setts.Bool("stats.depth")
	llrb.vheight = setts.Bool("validate.height")
	llrb.vrank = setts.Bool("validate.rank")
	llrb.setts = setts
}
