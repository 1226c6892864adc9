package sift

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var ugcPolicy = bluemonday.UGCPolicy()

// Sanitize renders the node's outer HTML cleaned by the policy, stripping
// markup unsafe for re-display. A nil policy applies the UGC default.
func (n *Node) Sanitize(policy *bluemonday.Policy) *Scalar {
	if n.null {
		return NullScalar()
	}
	if policy == nil {
		policy = ugcPolicy
	}
	raw, err := goquery.OuterHtml(n.sel)
	if err != nil {
		return nullScalarErr(err)
	}
	return NewScalar(policy.Sanitize(raw))
}
