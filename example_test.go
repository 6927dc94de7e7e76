package tombi_test

import (
	"fmt"

	tombi "github.com/maurice/tombi"
)

func ExampleParse() {
	res := tombi.Parse("name = \"tombi\"\nversion = 1\n")
	fmt.Println(len(res.Errors))
	fmt.Print(res.Root.Text())
	// Output:
	// 0
	// name = "tombi"
	// version = 1
}

func ExampleCastTable() {
	res := tombi.Parse("[package]\nname = \"tombi\"\n")
	root, _ := tombi.CastRoot(res.Root)
	for _, item := range root.Items() {
		table, ok := tombi.CastTable(item.Node)
		if !ok {
			continue
		}
		header, _ := table.Header()
		for _, part := range header.Parts() {
			fmt.Println(part.Name())
		}
	}
	// Output:
	// package
}
