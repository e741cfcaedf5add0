package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/fristark/fristark/internal/fristark/core"
	"github.com/fristark/fristark/internal/fristark/utils"
	"github.com/fristark/fristark/pkg/fristark"
)

// Command-line driver: proves and verifies a random low-degree
// codeword for the given parameters, reporting the proof size.

func main() {
	modulusFlag := flag.String("modulus", "3221225473", "prime field modulus")
	maxDegree := flag.Int("max-degree", 63, "degree bound (max-degree+1 must be a power of two)")
	expansion := flag.Int("expansion", 4, "codeword length / (max-degree+1)")
	checks := flag.Int("checks", 10, "colinearity checks per round")
	flag.Parse()

	modulus, ok := new(big.Int).SetString(*modulusFlag, 10)
	if !ok {
		fatal(fmt.Sprintf("invalid modulus: %q", *modulusFlag))
	}

	config := &fristark.Config{
		FieldModulus:      modulus,
		MaxDegree:         *maxDegree,
		ExpansionFactor:   *expansion,
		ColinearityChecks: *checks,
		HashFunction:      utils.HashBlake3,
	}
	if err := config.Validate(); err != nil {
		fatal(err.Error())
	}

	field, err := fristark.NewField(modulus)
	if err != nil {
		fatal(err.Error())
	}

	codewordSize := config.CodewordSize()
	omega, err := field.PrimitiveNthRoot(uint64(codewordSize))
	if err != nil {
		fatal(err.Error())
	}

	coefficients := make([]*core.FieldElement, *maxDegree+1)
	for i := range coefficients {
		coefficients[i], err = field.RandomElement()
		if err != nil {
			fatal(err.Error())
		}
	}
	polynomial, err := core.NewPolynomial(field, coefficients)
	if err != nil {
		fatal(err.Error())
	}

	codeword := make([]*big.Int, codewordSize)
	for i, x := range field.PowerSeries(omega, codewordSize) {
		codeword[i] = polynomial.Eval(x).Big()
	}

	fmt.Printf("proving: modulus=%s degree<=%d codeword=%d checks=%d\n",
		modulus, *maxDegree, codewordSize, *checks)

	transcript := fristark.NewTranscript()
	proof, err := fristark.Prove(codeword, modulus, uint32(*maxDegree), *checks, transcript, omega.Big())
	if err != nil {
		fatal(err.Error())
	}
	fmt.Printf("proof: %d bytes, %d rounds, last-round degree bound %d\n",
		transcript.Len(), proof.RoundsCount, proof.MaxDegreeOfLastRound)

	decoded, _, err := fristark.FromSerialization(transcript.Bytes(), 0)
	if err != nil {
		fatal(err.Error())
	}
	if err := fristark.Verify(decoded, modulus); err != nil {
		fatal(err.Error())
	}
	fmt.Println("proof verified")
}

func fatal(message string) {
	fmt.Fprintf(os.Stderr, "fristark: %s\n", message)
	os.Exit(1)
}
