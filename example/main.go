package main

import (
	"fmt"
	"log"

	"github.com/theflywheel/chainhash"
)

func main() {
	// Create a table with room for 8 entries
	ht, err := chainhash.New[string](8, 0.75)
	if err != nil {
		log.Fatalf("Failed to create table: %v", err)
	}

	// Insert some data
	ht.Insert(101, "Alice")
	ht.Insert(202, "Bob")
	ht.Insert(303, "Charlie")

	fmt.Println("Size:", ht.Size())
	fmt.Println("Capacity:", ht.Capacity())
	fmt.Printf("Load factor: %.3f\n", ht.LoadFactor())

	// Look up a present and an absent key
	if v, ok := ht.Search(202); ok {
		fmt.Println("Search 202:", v)
	}
	if _, ok := ht.Search(999); !ok {
		fmt.Println("Search 999: not found")
	}

	// Update a value in place
	ht.Insert(202, "Bob Updated")
	if v, ok := ht.Search(202); ok {
		fmt.Println("Search 202 after update:", v)
	}

	// Delete an entry and verify it is gone
	fmt.Println("Delete 101:", ht.Delete(101))
	if _, ok := ht.Search(101); !ok {
		fmt.Println("Search 101: not found")
	}
	fmt.Println("Size:", ht.Size())

	// String identifiers can be mapped to table keys
	ht.Insert(chainhash.StringKey("dave"), "Dave")
	if v, ok := ht.Search(chainhash.StringKey("dave")); ok {
		fmt.Println("Search dave:", v)
	}

	fmt.Println("Example completed successfully")
}
