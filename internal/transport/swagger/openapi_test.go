package swagger_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSwagger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Swagger Suite")
}

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("is a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("documents the apontamento workflow endpoints", func() {
		Expect(doc.Paths.Find("/apontamentos")).NotTo(BeNil())
		Expect(doc.Paths.Find("/apontamentos/{id}/approve")).NotTo(BeNil())
		Expect(doc.Paths.Find("/apontamentos/{id}/reject")).NotTo(BeNil())
		Expect(doc.Paths.Find("/os/{id}/refresh")).NotTo(BeNil())
	})

	It("declares the blocking create responses", func() {
		item := doc.Paths.Find("/apontamentos")
		Expect(item).NotTo(BeNil())
		post := item.Post
		Expect(post).NotTo(BeNil())
		for _, status := range []string{"403", "404", "422"} {
			Expect(post.Responses.Value(status)).NotTo(BeNil(), "missing %s response", status)
		}
	})
})
