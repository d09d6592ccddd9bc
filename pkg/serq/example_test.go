package serq_test

import (
	"bytes"
	"fmt"
	"log"

	"github.com/tmarsden/binq/pkg/serq"
)

// Example_saveLoad demonstrates the full write/read/validate/pop cycle.
func Example_saveLoad() {
	scores := serq.MapOf(serq.String, serq.Uint64)

	q := serq.New()
	serq.String.Push(q, "slot-1")
	scores.Push(q, map[string]uint64{"Bob": 1023, "Jim": 932})
	serq.Float64.Push(q, 1.4)

	var file bytes.Buffer
	if _, err := q.Write(&file); err != nil {
		log.Fatal(err)
	}

	loaded := serq.New()
	if err := loaded.Read(&file); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("valid: %t\n", loaded.Validate())

	label, err := serq.String.Pop(loaded)
	if err != nil {
		log.Fatal(err)
	}
	m, err := scores.Pop(loaded)
	if err != nil {
		log.Fatal(err)
	}
	version, err := serq.Float64.Pop(loaded)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("label: %s\n", label)
	fmt.Printf("Bob: %d\n", m["Bob"])
	fmt.Printf("version: %v\n", version)

	// Output:
	// valid: true
	// label: slot-1
	// Bob: 1023
	// version: 1.4
}

// ExampleListOf demonstrates nested collection types.
func ExampleListOf() {
	matrix := serq.ListOf(serq.ListOf(serq.Uint64))

	q := serq.New()
	matrix.Push(q, [][]uint64{{1, 0, 0}, {0, 1, 0}, {0, 1, 1}})
	if _, err := q.Finalize(); err != nil {
		log.Fatal(err)
	}

	got, err := matrix.Pop(q)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(got)

	// Output:
	// [[1 0 0] [0 1 0] [0 1 1]]
}
