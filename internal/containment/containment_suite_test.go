package containment_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestContainment(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Containment Suite")
}
