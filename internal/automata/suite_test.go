package automata_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAutomata(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Automata Suite")
}
