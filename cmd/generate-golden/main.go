// Command generate-golden writes the reference sums and products that the
// digits tests compare against, computed with math/big.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
)

// GoldenData is one case of the golden file.
type GoldenData struct {
	A       string `json:"a"`
	B       string `json:"b"`
	Sum     string `json:"sum"`
	Product string `json:"product"`
}

func main() {
	outputDir := flag.String("out", "internal/digits/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "arith_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	data := make([]GoldenData, 0, len(cases()))
	for _, c := range cases() {
		sum, product, err := oracle(c[0], c[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		data = append(data, GoldenData{A: c[0], B: c[1], Sum: sum, Product: product})
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d cases to %s\n", len(data), filename)
}

// cases covers carries through every position, zeros, leading zeros and
// operands of very different lengths.
func cases() [][2]string {
	nines := func(n int) string { return strings.Repeat("9", n) }
	return [][2]string{
		{"0", "0"},
		{"0", "123456789123456789"},
		{"1", "9"},
		{"999", "1"},
		{"000123", "45"},
		{"99999999", "99999999"},
		{"9999999999", "9999999999"},
		{"18446744073709551615", "18446744073709551615"},
		{nines(20), nines(20)},
		{nines(50), "2"},
		{nines(100), nines(100)},
		{"1" + strings.Repeat("0", 60), "1"},
		{strings.Repeat("1234567890", 3), strings.Repeat("9876543210", 2)},
		{strings.Repeat("1234567890", 10), strings.Repeat("9876543210", 7)},
		{strings.Repeat("31415926535897932384", 5), "271828182845904523536028747135"},
	}
}

// oracle returns a+b and a*b as decimal strings.
func oracle(a, b string) (sum, product string, err error) {
	x, ok := new(big.Int).SetString(a, 10)
	if !ok {
		return "", "", fmt.Errorf("invalid operand %q", a)
	}
	y, ok := new(big.Int).SetString(b, 10)
	if !ok {
		return "", "", fmt.Errorf("invalid operand %q", b)
	}
	return new(big.Int).Add(x, y).String(), new(big.Int).Mul(x, y).String(), nil
}
