package template_test

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/expedition0/lumen/pkg/expr"
	"github.com/expedition0/lumen/pkg/expr/template"
	"github.com/expedition0/lumen/pkg/trit"
)

func TestTemplate(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Template Suite")
}

func operatorOf(s *expr.OperatorSlot) expr.Operator {
	op, ok := s.Operator()
	Expect(ok).To(BeTrue())
	return op
}

var _ = Describe("Factories", func() {
	It("should build a self-consistent binary AND", func() {
		t := template.Binary(expr.AND, trit.True, true, template.V(trit.True), template.V(trit.True))
		Expect(t.Evaluate()).To(Equal(trit.True))
		Expect(t.Check()).To(BeTrue())
	})

	It("should leave absent values open", func() {
		t := template.Binary(expr.OR, trit.Neutral, true, nil, template.V(trit.False))
		Expect(t.ValueSlots).To(HaveLen(2))
		Expect(t.ValueSlots[0].Filled()).To(BeFalse())
		Expect(t.ValueSlots[0].Locked()).To(BeFalse())
		Expect(t.ValueSlots[1].Locked()).To(BeTrue())

		_, err := t.Evaluate()
		Expect(errors.Is(err, expr.ErrIncomplete)).To(BeTrue())

		Expect(t.ValueSlots[0].Set(trit.Neutral)).To(Succeed())
		Expect(t.Check()).To(BeTrue())
	})

	It("should fill but not lock operators when asked", func() {
		t := template.Binary(expr.IMPLY, trit.Neutral, false, nil, nil)
		op := t.OperatorSlots[0]
		Expect(op.Filled()).To(BeTrue())
		Expect(op.Locked()).To(BeFalse())
		Expect(operatorOf(op)).To(Equal(expr.IMPLY))
		Expect(op.Set(expr.XOR)).To(Succeed())
	})

	It("should build NOT over a single leaf", func() {
		t := template.Unary(trit.True, true, template.V(trit.False))
		Expect(t.OperatorSlots).To(HaveLen(1))
		Expect(t.ValueSlots).To(HaveLen(1))
		Expect(t.OperatorSlots[0].Right).To(BeNil())
		Expect(t.Check()).To(BeTrue())
	})

	It("should build the left associative triple", func() {
		t := template.TripleLeftAssoc(expr.OR, expr.AND, trit.True, true,
			template.V(trit.Neutral), template.V(trit.True), template.V(trit.True))
		root := t.Root.(*expr.OperatorSlot)
		Expect(operatorOf(root)).To(Equal(expr.AND))
		inner := root.Left.(*expr.OperatorSlot)
		Expect(operatorOf(inner)).To(Equal(expr.OR))
		Expect(root.Right).To(BeIdenticalTo(t.ValueSlots[2]))

		Expect(t.OperatorSlots).To(HaveExactElements(BeIdenticalTo(root), BeIdenticalTo(inner)))
		Expect(t.Check()).To(BeTrue())
	})

	It("should build the right associative triple", func() {
		t := template.TripleRightAssoc(expr.OR, expr.AND, trit.Neutral, true,
			template.V(trit.Neutral), template.V(trit.False), template.V(trit.True))
		root := t.Root.(*expr.OperatorSlot)
		Expect(operatorOf(root)).To(Equal(expr.OR))
		Expect(root.Left).To(BeIdenticalTo(t.ValueSlots[0]))
		inner := root.Right.(*expr.OperatorSlot)
		Expect(operatorOf(inner)).To(Equal(expr.AND))
		Expect(inner.Left).To(BeIdenticalTo(t.ValueSlots[1]))
		Expect(t.Check()).To(BeTrue())
	})

	It("should build the complex binary tree", func() {
		t := template.ComplexBinary(expr.AND, expr.OR, expr.XOR, trit.False, false,
			template.V(trit.True), template.V(trit.True), template.V(trit.Neutral), template.V(trit.True))
		Expect(t.ValueSlots).To(HaveLen(4))
		Expect(t.OperatorSlots).To(HaveLen(3))
		Expect(operatorOf(t.OperatorSlots[0])).To(Equal(expr.XOR))
		Expect(operatorOf(t.OperatorSlots[1])).To(Equal(expr.AND))
		Expect(operatorOf(t.OperatorSlots[2])).To(Equal(expr.OR))
		for _, s := range t.OperatorSlots {
			Expect(s.Locked()).To(BeFalse())
		}
		Expect(t.Check()).To(BeTrue())
	})

	It("should not enforce answer consistency", func() {
		t := template.Binary(expr.AND, trit.True, true, template.V(trit.False), template.V(trit.True))
		Expect(t.Check()).To(BeFalse())
	})
})
