//go:build bench
// +build bench

package serq

import (
	"bytes"
	"testing"
)

func BenchmarkFinalize(b *testing.B) {
	benchmarks := []struct {
		name  string
		count int
	}{
		{name: "small", count: 16},
		{name: "medium", count: 1024},
		{name: "large", count: 65536},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			q := New()
			for i := 0; i < bm.count; i++ {
				Uint64.Push(q, uint64(i))
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := q.Finalize(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkRoundTrip(b *testing.B) {
	list := make([]uint64, 1000)
	for i := range list {
		list[i] = uint64(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q := New()
		ListOf(Uint64).Push(q, list)

		var file bytes.Buffer
		if _, err := q.Write(&file); err != nil {
			b.Fatal(err)
		}

		loaded := New()
		if err := loaded.Read(&file); err != nil {
			b.Fatal(err)
		}
		if _, err := ListOf(Uint64).Pop(loaded); err != nil {
			b.Fatal(err)
		}
	}
}
