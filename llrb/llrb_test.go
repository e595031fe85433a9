package llrb

import "fmt"
import "bytes"
import "errors"
import "testing"
import "strings"
import "math/rand"

import "github.com/bnclabs/ordmap/api"
import "github.com/stretchr/testify/require"

func TestLLRBEmpty(t *testing.T) {
	llrb := NewLLRB[int, string]("empty", Defaultsettings())
	defer llrb.Destroy()

	if llrb.ID() != "empty" {
		t.Errorf("unexpected %v", llrb.ID())
	} else if llrb.Len() != 0 {
		t.Errorf("unexpected %v", llrb.Len())
	} else if llrb.IsEmpty() == false {
		t.Errorf("expected empty")
	} else if x := llrb.Height(); x != 0 {
		t.Errorf("unexpected %v", x)
	}

	if _, _, err := llrb.Min(); err != api.ErrorUnderflow {
		t.Errorf("unexpected %v", err)
	} else if _, _, err := llrb.Max(); err != api.ErrorUnderflow {
		t.Errorf("unexpected %v", err)
	} else if _, _, err := llrb.DeleteMin(); err != api.ErrorUnderflow {
		t.Errorf("unexpected %v", err)
	} else if _, _, err := llrb.DeleteMax(); err != api.ErrorUnderflow {
		t.Errorf("unexpected %v", err)
	} else if _, _, err := llrb.Select(0); err != api.ErrorOutOfRange {
		t.Errorf("unexpected %v", err)
	} else if _, ok := llrb.Delete(10); ok {
		t.Errorf("unexpected delete")
	} else if _, ok := llrb.Get(10); ok {
		t.Errorf("unexpected get")
	}

	// validate statistics
	llrb.Validate()
	stats := llrb.Stats()
	if x := stats["n_count"].(int64); x != 0 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_deletes"].(int64); x != 0 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_inserts"].(int64); x != 0 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_updates"].(int64); x != 0 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_lookups"].(int64); x != 4 {
		t.Errorf("unexpected %v", x)
	}

	llrb.Log(true)
}

func TestLLRBLoad(t *testing.T) {
	llrb := NewLLRB[string, string]("load", Defaultsettings())
	defer llrb.Destroy()

	if llrb.ID() != "load" {
		t.Errorf("unexpected %v", llrb.ID())
	}

	// load data
	keys := []string{
		"key1", "key2", "key3", "key4", "key5", "key6", "key7", "key8",
		"key11", "key12", "key13", "key14", "key15", "key16", "key17", "key18",
	}
	vals := []string{
		"val1", "val2", "val3", "val4", "val5", "val6", "val7", "val8",
		"val11", "val12", "val13", "val14", "val15", "val16", "val17", "val18",
	}
	for i, key := range keys {
		if oldvalue, ok := llrb.Put(key, vals[i]); ok {
			t.Errorf("unexpected old value %s", oldvalue)
		} else if x := llrb.Len(); x != int64(i+1) {
			t.Errorf("expected %v, got %v", i+1, x)
		}
		llrb.Validate()
	}
	// test loaded data
	for i, key := range keys {
		if value, ok := llrb.Get(key); !ok {
			t.Errorf("expected key %s", key)
		} else if value != vals[i] {
			t.Errorf("expected %s, got %s, key %s", vals[i], value, key)
		} else if llrb.Has(key) == false {
			t.Errorf("expected key %s", key)
		}
	}
	if llrb.Has("key0") {
		t.Errorf("unexpected key0")
	}
	// test update.
	if oldvalue, ok := llrb.Put(keys[0], "newvalue"); !ok {
		t.Errorf("expected old value")
	} else if oldvalue != vals[0] {
		t.Errorf("expected %s, got %s", vals[0], oldvalue)
	} else if value, _ := llrb.Get(keys[0]); value != "newvalue" {
		t.Errorf("unexpected %s", value)
	} else if x := llrb.Len(); x != int64(len(keys)) {
		t.Errorf("unexpected %v", x)
	}

	llrb.Validate()
	stats := llrb.Stats()
	if x := stats["n_count"].(int64); x != int64(len(keys)) {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_inserts"].(int64); x != int64(len(keys)) {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_updates"].(int64); x != 1 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_deletes"].(int64); x != 0 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_rotations"].(int64); x == 0 {
		t.Errorf("unexpected %v", x)
	}
	h := stats["h_upsertdepth"].(map[string]interface{})
	if x := h["samples"].(int64); x != int64(len(keys)+1) {
		t.Errorf("unexpected %v", x)
	}
	fstats := llrb.Fullstats()
	if x := fstats["height"].(int64); x != llrb.Height() {
		t.Errorf("expected %v, got %v", llrb.Height(), x)
	} else if x := fstats["n_blacks"].(int64); x < 2 {
		t.Errorf("unexpected %v", x)
	}
	llrb.Log(true)
	llrb.Log(false)
}

func TestLLRBDeleteMin(t *testing.T) {
	llrb := NewLLRB[int, string]("deletemin", nil)
	defer llrb.Destroy()

	llrb.Put(1, "foo")
	llrb.Put(2, "bar")
	llrb.Put(3, "baz")

	if key, _, err := llrb.Min(); err != nil || key != 1 {
		t.Errorf("unexpected %v %v", key, err)
	} else if key, _, err := llrb.Max(); err != nil || key != 3 {
		t.Errorf("unexpected %v %v", key, err)
	}

	key, value, err := llrb.DeleteMin()
	if err != nil || key != 1 || value != "foo" {
		t.Errorf("unexpected %v %v %v", key, value, err)
	} else if x := llrb.Len(); x != 2 {
		t.Errorf("unexpected %v", x)
	} else if key, _, _ := llrb.Min(); key != 2 {
		t.Errorf("unexpected %v", key)
	}
	llrb.Validate()

	key, value, err = llrb.DeleteMin()
	if err != nil || key != 2 || value != "bar" {
		t.Errorf("unexpected %v %v %v", key, value, err)
	} else if x := llrb.Len(); x != 1 {
		t.Errorf("unexpected %v", x)
	} else if key, _, _ := llrb.Min(); key != 3 {
		t.Errorf("unexpected %v", key)
	}
	llrb.Validate()

	key, value, err = llrb.DeleteMin()
	if err != nil || key != 3 || value != "baz" {
		t.Errorf("unexpected %v %v %v", key, value, err)
	} else if x := llrb.Len(); x != 0 {
		t.Errorf("unexpected %v", x)
	} else if llrb.IsEmpty() == false {
		t.Errorf("expected empty")
	}
	llrb.Validate()

	if _, _, err = llrb.DeleteMin(); !errors.Is(err, api.ErrorUnderflow) {
		t.Errorf("unexpected %v", err)
	}
}

func TestLLRBDeleteMax(t *testing.T) {
	llrb := NewLLRB[int, int]("deletemax", nil)
	defer llrb.Destroy()

	n := 1000
	for _, key := range rand.Perm(n) {
		llrb.Put(key, key*10)
	}
	llrb.Validate()

	for i := n - 1; i >= 0; i-- {
		key, value, err := llrb.DeleteMax()
		if err != nil {
			t.Fatalf("unexpected %v", err)
		} else if key != i || value != i*10 {
			t.Fatalf("expected %v, got %v %v", i, key, value)
		} else if x := llrb.Len(); x != int64(i) {
			t.Fatalf("expected %v, got %v", i, x)
		}
		if i%50 == 0 {
			llrb.Validate()
		}
	}
	if _, _, err := llrb.DeleteMax(); err != api.ErrorUnderflow {
		t.Errorf("unexpected %v", err)
	}
	llrb.Validate()
	if x := llrb.Stats()["n_deletes"].(int64); x != int64(n) {
		t.Errorf("unexpected %v", x)
	}
}

func TestLLRBDelete(t *testing.T) {
	llrb := NewLLRB[int, string]("delete", nil)
	defer llrb.Destroy()

	n := 1000
	for _, key := range rand.Perm(n) {
		llrb.Put(key, fmt.Sprintf("value%v", key))
	}
	llrb.Validate()

	// missing key, twice.
	for i := 0; i < 2; i++ {
		if _, ok := llrb.Delete(n + 10); ok {
			t.Errorf("unexpected delete")
		} else if x := llrb.Len(); x != int64(n) {
			t.Errorf("unexpected %v", x)
		}
		llrb.Validate()
	}

	count := int64(n)
	for i, key := range rand.Perm(n) {
		value, ok := llrb.Delete(key)
		count--
		if !ok {
			t.Fatalf("expected key %v", key)
		} else if value != fmt.Sprintf("value%v", key) {
			t.Fatalf("unexpected %v for %v", value, key)
		} else if x := llrb.Len(); x != count {
			t.Fatalf("expected %v, got %v", count, x)
		} else if llrb.Has(key) {
			t.Fatalf("unexpected key %v", key)
		}
		if _, ok := llrb.Delete(key); ok {
			t.Fatalf("unexpected second delete for %v", key)
		}
		if i%50 == 0 {
			llrb.Validate()
		}
	}
	llrb.Validate()
	if llrb.IsEmpty() == false {
		t.Errorf("expected empty")
	}
}

func TestLLRBZeroDelete(t *testing.T) {
	setts := Defaultsettings()
	setts["put.zerodelete"] = true
	llrb := NewLLRB[int, string]("zerodelete", setts)
	defer llrb.Destroy()

	llrb.Put(1, "one")
	llrb.Put(2, "two")

	// zero value of a missing key is a no-op.
	if _, ok := llrb.Put(3, ""); ok {
		t.Errorf("unexpected ok")
	} else if llrb.Has(3) {
		t.Errorf("unexpected key 3")
	} else if x := llrb.Len(); x != 2 {
		t.Errorf("unexpected %v", x)
	}
	// zero value of a present key is a delete.
	if value, ok := llrb.Put(1, ""); !ok || value != "one" {
		t.Errorf("unexpected %v %v", value, ok)
	} else if llrb.Has(1) {
		t.Errorf("unexpected key 1")
	} else if x := llrb.Len(); x != 1 {
		t.Errorf("unexpected %v", x)
	}
	llrb.Validate()

	// by default zero value is stored.
	llrb = NewLLRB[int, string]("zerovalue", nil)
	llrb.Put(1, "")
	if value, ok := llrb.Get(1); !ok || value != "" {
		t.Errorf("unexpected %v %v", value, ok)
	}
}

func TestLLRBRotations(t *testing.T) {
	llrb := NewLLRB[int, string]("rotations", nil)
	defer llrb.Destroy()

	// 3,1,2 forces a rotate-left followed by rotate-right.
	llrb.Put(3, "c")
	llrb.Put(1, "a")
	llrb.Put(2, "b")
	llrb.Validate()

	for i, ref := range []int{1, 2, 3} {
		if key, _, err := llrb.Select(int64(i)); err != nil || key != ref {
			t.Errorf("expected %v, got %v %v", ref, key, err)
		}
	}
	if x := llrb.Rank(1); x != 0 {
		t.Errorf("unexpected %v", x)
	} else if x := llrb.Rank(3); x != 2 {
		t.Errorf("unexpected %v", x)
	} else if llrb.root.key != 2 {
		t.Errorf("unexpected root %v", llrb.root.key)
	}
	stats := llrb.Stats()
	if x := stats["n_rotations"].(int64); x != 2 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_flips"].(int64); x != 1 {
		t.Errorf("unexpected %v", x)
	}
}

func TestLLRBBytesKey(t *testing.T) {
	llrb := NewLLRBFunc[[]byte, []byte]("bytes", api.Bytescmp, nil)
	defer llrb.Destroy()

	keys := []string{"banana", "apple", "cherry", "date", "elder", "fig"}
	for _, key := range keys {
		llrb.Put([]byte(key), []byte(strings.ToUpper(key)))
	}
	llrb.Validate()

	if value, ok := llrb.Get([]byte("cherry")); !ok {
		t.Errorf("expected cherry")
	} else if bytes.Compare(value, []byte("CHERRY")) != 0 {
		t.Errorf("unexpected %s", value)
	}
	if key, _, err := llrb.Floor([]byte("coconut")); err != nil {
		t.Errorf("unexpected %v", err)
	} else if string(key) != "cherry" {
		t.Errorf("unexpected %s", key)
	}
	outs := []string{}
	for key := range llrb.Keys() {
		outs = append(outs, string(key))
	}
	if x := strings.Join(outs, ","); x != "apple,banana,cherry,date,elder,fig" {
		t.Errorf("unexpected %v", x)
	}
}

func TestLLRBClone(t *testing.T) {
	llrb := NewLLRB[int, int]("original", nil)
	defer llrb.Destroy()
	for _, key := range rand.Perm(100) {
		llrb.Put(key, key)
	}

	newllrb := llrb.Clone("cloned")
	defer newllrb.Destroy()
	newllrb.Validate()
	if newllrb.ID() != "cloned" {
		t.Errorf("unexpected %v", newllrb.ID())
	} else if x := newllrb.Len(); x != 100 {
		t.Errorf("unexpected %v", x)
	} else if x, y := llrb.Height(), newllrb.Height(); x != y {
		t.Errorf("expected %v, got %v", x, y)
	}

	// clones are independent of each other.
	newllrb.Put(1000, 1000)
	llrb.Delete(10)
	if llrb.Has(1000) {
		t.Errorf("unexpected key 1000")
	} else if newllrb.Has(10) == false {
		t.Errorf("expected key 10")
	}
	llrb.Validate()
	newllrb.Validate()
}

func TestLLRBDestroy(t *testing.T) {
	llrb := NewLLRB[int, int]("destroy", nil)
	llrb.Put(1, 1)
	llrb.Destroy()
	if llrb.Isactive() {
		t.Errorf("expected dead tree")
	} else if llrb.Len() != 0 {
		t.Errorf("unexpected %v", llrb.Len())
	}
	require.Panics(t, func() { llrb.Destroy() })
}

func TestLLRBDotdump(t *testing.T) {
	llrb := NewLLRB[int, int]("dotdump", nil)
	defer llrb.Destroy()
	for key := 1; key <= 3; key++ {
		llrb.Put(key, key)
	}

	buf := bytes.NewBuffer(nil)
	llrb.Dotdump(buf)
	out := buf.String()
	refs := []string{
		"digraph llrb {",
		`"2" [label="{2|size:3}"];`,
		`"2" -> "1" [color=black];`,
		`"2" -> "3" [color=black];`,
		`"1" [label="{1|size:1}"];`,
	}
	for _, ref := range refs {
		if !strings.Contains(out, ref) {
			t.Errorf("expected %q in %v", ref, out)
		}
	}
	if !strings.HasSuffix(out, "}") {
		t.Errorf("unexpected %v", out)
	}
}

// random mix of puts and deletes, checked against a reference map.
func TestLLRBRandom(t *testing.T) {
	llrb := NewLLRB[int, int]("random", nil)
	defer llrb.Destroy()

	rnd := rand.New(rand.NewSource(100))
	refmap := make(map[int]int)
	for i := 0; i < 20000; i++ {
		key := rnd.Intn(2000)
		switch op := rnd.Intn(10); {
		case op < 5:
			_, ok := llrb.Put(key, i)
			_, refok := refmap[key]
			require.Equal(t, refok, ok, "put %v", key)
			refmap[key] = i
		case op < 8:
			value, ok := llrb.Delete(key)
			refvalue, refok := refmap[key]
			require.Equal(t, refok, ok, "delete %v", key)
			if ok {
				require.Equal(t, refvalue, value, "delete %v", key)
			}
			delete(refmap, key)
		case op < 9:
			key, value, err := llrb.DeleteMin()
			if len(refmap) == 0 {
				require.ErrorIs(t, err, api.ErrorUnderflow)
				break
			}
			require.NoError(t, err)
			require.Equal(t, refmap[key], value)
			delete(refmap, key)
		default:
			key, value, err := llrb.DeleteMax()
			if len(refmap) == 0 {
				require.ErrorIs(t, err, api.ErrorUnderflow)
				break
			}
			require.NoError(t, err)
			require.Equal(t, refmap[key], value)
			delete(refmap, key)
		}
		require.Equal(t, int64(len(refmap)), llrb.Len())
		require.LessOrEqual(t, float64(llrb.Height()), maxheight(llrb.Len()))
		if i%1000 == 0 {
			llrb.Validate()
		}
	}
	llrb.Validate()

	prev, count := -1, 0
	for key, value := range llrb.All() {
		require.Greater(t, key, prev)
		require.Equal(t, refmap[key], value)
		prev, count = key, count+1
	}
	require.Equal(t, len(refmap), count)
}

func BenchmarkLLRBPut(b *testing.B) {
	llrb := NewLLRB[int, int]("bench", nil)
	defer llrb.Destroy()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		llrb.Put(i, i)
	}
}

func BenchmarkLLRBGet(b *testing.B) {
	llrb := NewLLRB[int, int]("bench", nil)
	defer llrb.Destroy()
	for i := 0; i < 100000; i++ {
		llrb.Put(i, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		llrb.Get(i % 100000)
	}
}

func BenchmarkLLRBDelete(b *testing.B) {
	llrb := NewLLRB[int, int]("bench", nil)
	defer llrb.Destroy()
	for i := 0; i < b.N; i++ {
		llrb.Put(i, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		llrb.Delete(i)
	}
}
