// Package e2e provides end-to-end retrieval tests over a realistic policy
// corpus with multiple query test cases.
package e2e

import (
	"strings"

	"github.com/omkar2816/Legal-RAG-System/internal/vectorstore"
)

// Passage is one corpus entry: a policy clause with its location metadata.
// The signature is a distinctive phrase, in normalized form, that queries
// targeting this passage contain after normalization.
type Passage struct {
	ID        string
	DocID     string
	DocTitle  string
	Section   string
	Page      int
	Text      string
	Signature string
}

// QueryTestCase defines a query and the document ID(s) that must appear in
// the retrieved candidates. At least one of ExpectedDocIDs must be present.
type QueryTestCase struct {
	Query          string
	ExpectedDocIDs []string
	Description    string
}

// Corpus holds passages and query test cases for end-to-end tests.
type Corpus struct {
	Passages  []Passage
	TestCases []QueryTestCase
}

// BuildCorpus returns a corpus of policy passages with varied sections and
// a query test case per distinctive clause.
func BuildCorpus() *Corpus {
	passages := buildPassages()
	return &Corpus{
		Passages:  passages,
		TestCases: buildQueryTestCases(passages),
	}
}

func buildPassages() []Passage {
	return []Passage{
		{
			ID: "health-1/p1", DocID: "health-1", DocTitle: "Comprehensive Health Policy",
			Section: "Waiting Periods", Page: 12, Signature: "48 month waiting period",
			Text: "Pre-existing diseases are covered after a 48-month waiting period from the first policy inception date.",
		},
		{
			ID: "health-1/p2", DocID: "health-1", DocTitle: "Comprehensive Health Policy",
			Section: "Waiting Periods", Page: 13, Signature: "cataract surgery",
			Text: "Cataract surgery and joint replacement carry a specific waiting period of 24 months per eye or joint.",
		},
		{
			ID: "health-1/p3", DocID: "health-1", DocTitle: "Comprehensive Health Policy",
			Section: "Exclusions", Page: 21, Signature: "cosmetic or plastic surgery",
			Text: "Cosmetic or plastic surgery is not covered unless necessitated by an accident or burn injury.",
		},
		{
			ID: "health-1/p4", DocID: "health-1", DocTitle: "Comprehensive Health Policy",
			Section: "Definitions", Page: 3, Signature: "any hospitalisation exceeding 24 hours",
			Text: "Inpatient care means any hospitalisation exceeding 24 hours of continuous admission in a network hospital.",
		},
		{
			ID: "premium-1/p1", DocID: "premium-1", DocTitle: "Premium Payment Terms",
			Section: "Grace Period", Page: 5, Signature: "grace period of 30 days",
			Text: "A grace period of 30 days is allowed for payment of renewal premium without loss of continuity benefits.",
		},
		{
			ID: "premium-1/p2", DocID: "premium-1", DocTitle: "Premium Payment Terms",
			Section: "Premium Schedule", Page: 6, Signature: "annual premium instalments",
			Text: "The policyholder may pay the annual premium instalments monthly, quarterly, or half-yearly at an added loading.",
		},
		{
			ID: "claims-1/p1", DocID: "claims-1", DocTitle: "Claims Procedure Manual",
			Section: "Claim Intimation", Page: 2, Signature: "within 48 hours of admission",
			Text: "Claims must be intimated to the insurer within 48 hours of admission for planned hospitalisation reimbursement.",
		},
		{
			ID: "claims-1/p2", DocID: "claims-1", DocTitle: "Claims Procedure Manual",
			Section: "Cashless Facility", Page: 4, Signature: "cashless facility at network hospitals",
			Text: "The insured can avail the cashless facility at network hospitals by presenting the health card at the TPA desk.",
		},
		{
			ID: "claims-1/p3", DocID: "claims-1", DocTitle: "Claims Procedure Manual",
			Section: "Required Documents", Page: 7, Signature: "original discharge summary",
			Text: "The reimbursement claim must include the original discharge summary, itemised bills, and investigation reports.",
		},
		{
			ID: "maternity-1/p1", DocID: "maternity-1", DocTitle: "Maternity Benefit Rider",
			Section: "Coverage", Page: 1, Signature: "maternity expenses including delivery",
			Text: "The rider covers maternity expenses including delivery charges, subject to a 36-month waiting period.",
		},
		{
			ID: "maternity-1/p2", DocID: "maternity-1", DocTitle: "Maternity Benefit Rider",
			Section: "Newborn Cover", Page: 2, Signature: "newborn baby from day one",
			Text: "The newborn baby from day one is covered up to the maternity sum insured until the first renewal.",
		},
		{
			ID: "limits-1/p1", DocID: "limits-1", DocTitle: "Sub-limits and Deductibles",
			Section: "Room Rent", Page: 8, Signature: "room rent is capped",
			Text: "Room rent is capped at one percent of the sum insured per day, with proportionate deduction beyond the limit.",
		},
		{
			ID: "limits-1/p2", DocID: "limits-1", DocTitle: "Sub-limits and Deductibles",
			Section: "Deductible", Page: 9, Signature: "aggregate deductible of rupees ten thousand",
			Text: "An aggregate deductible of rupees ten thousand applies to each policy year before any claim becomes payable.",
		},
		{
			ID: "limits-1/p3", DocID: "limits-1", DocTitle: "Sub-limits and Deductibles",
			Section: "Copayment", Page: 10, Signature: "copayment of twenty percent",
			Text: "A copayment of twenty percent applies to insured persons above sixty years at the time of claim settlement.",
		},
		{
			ID: "renewal-1/p1", DocID: "renewal-1", DocTitle: "Renewal and Cancellation Terms",
			Section: "Lifelong Renewal", Page: 3, Signature: "lifelong renewability",
			Text: "The policy offers lifelong renewability and cannot be denied renewal except on grounds of fraud or misrepresentation.",
		},
		{
			ID: "renewal-1/p2", DocID: "renewal-1", DocTitle: "Renewal and Cancellation Terms",
			Section: "Free Look Period", Page: 4, Signature: "free look period of fifteen days",
			Text: "A free look period of fifteen days from receipt of the policy document allows cancellation with premium refund.",
		},
		{
			ID: "renewal-1/p3", DocID: "renewal-1", DocTitle: "Renewal and Cancellation Terms",
			Section: "No Claim Bonus", Page: 5, Signature: "cumulative bonus of ten percent",
			Text: "A cumulative bonus of ten percent of the sum insured accrues for every claim-free year, up to fifty percent.",
		},
		{
			ID: "ambulance-1/p1", DocID: "ambulance-1", DocTitle: "Ancillary Benefits Schedule",
			Section: "Ambulance Cover", Page: 2, Signature: "road ambulance charges",
			Text: "Road ambulance charges are reimbursed up to rupees two thousand per hospitalisation event.",
		},
		{
			ID: "ambulance-1/p2", DocID: "ambulance-1", DocTitle: "Ancillary Benefits Schedule",
			Section: "Organ Donor", Page: 3, Signature: "organ donor hospitalisation expenses",
			Text: "Organ donor hospitalisation expenses for harvesting the organ are payable when the insured is the recipient.",
		},
		{
			ID: "ayush-1/p1", DocID: "ayush-1", DocTitle: "Alternative Treatment Annexure",
			Section: "AYUSH Treatment", Page: 1, Signature: "ayurvedic and homeopathic treatment",
			Text: "Inpatient ayurvedic and homeopathic treatment is covered when taken at a government-recognised hospital.",
		},
		{
			ID: "domiciliary-1/p1", DocID: "domiciliary-1", DocTitle: "Domiciliary Treatment Annexure",
			Section: "Domiciliary Hospitalisation", Page: 1, Signature: "treatment taken at home",
			Text: "Domiciliary hospitalisation covers treatment taken at home for more than three days when a hospital bed is unavailable.",
		},
	}
}

func buildQueryTestCases(passages []Passage) []QueryTestCase {
	queries := []struct {
		query     string
		signature string
	}{
		{"What is the 48-month waiting period for pre-existing conditions?", "48 month waiting period"},
		{"Is there a waiting period for cataract surgery?", "cataract surgery"},
		{"Is cosmetic or plastic surgery excluded from coverage?", "cosmetic or plastic surgery"},
		{"What is the grace period of 30 days for premium payment?", "grace period of 30 days"},
		{"How do I notify a claim within 48 hours of admission?", "within 48 hours of admission"},
		{"How does the cashless facility at network hospitals work?", "cashless facility at network hospitals"},
		{"Are maternity expenses including delivery covered?", "maternity expenses including delivery"},
		{"How much room rent is capped per day?", "room rent is capped"},
		{"Does a copayment of twenty percent apply to senior citizens?", "copayment of twenty percent"},
		{"Does the policy offer lifelong renewability?", "lifelong renewability"},
		{"Can I cancel during the free look period of fifteen days?", "free look period of fifteen days"},
		{"Are road ambulance charges reimbursed?", "road ambulance charges"},
		{"Is ayurvedic and homeopathic treatment covered?", "ayurvedic and homeopathic treatment"},
		{"Is treatment taken at home covered under domiciliary hospitalisation?", "treatment taken at home"},
	}

	cases := make([]QueryTestCase, 0, len(queries))
	for _, q := range queries {
		for _, p := range passages {
			if strings.EqualFold(p.Signature, q.signature) {
				cases = append(cases, QueryTestCase{
					Query:          q.query,
					ExpectedDocIDs: []string{p.DocID},
					Description:    "query for " + q.signature,
				})
				break
			}
		}
	}
	return cases
}

// Signatures returns the distinctive phrase of every passage, in corpus
// order. The signature embedder uses them as embedding axes.
func (c *Corpus) Signatures() []string {
	out := make([]string, len(c.Passages))
	for i, p := range c.Passages {
		out[i] = strings.ToLower(p.Signature)
	}
	return out
}

// ToPoints converts the corpus to vector store points, one axis vector per
// passage matching the signature embedder's geometry.
func (c *Corpus) ToPoints() []vectorstore.Point {
	points := make([]vectorstore.Point, len(c.Passages))
	for i, p := range c.Passages {
		vec := make([]float32, len(c.Passages)+1)
		vec[i] = 1
		points[i] = vectorstore.Point{
			ID:     p.ID,
			Vector: vec,
			Payload: map[string]any{
				"doc_id":        p.DocID,
				"doc_title":     p.DocTitle,
				"text":          p.Text,
				"section_title": p.Section,
				"page_number":   int64(p.Page),
				"word_count":    int64(len(strings.Fields(p.Text))),
			},
		}
	}
	return points
}
