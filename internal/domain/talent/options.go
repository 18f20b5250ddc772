package talent

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithRules replaces the keyword table. An empty table is ignored.
func WithRules(rules []Rule) Option {
	return func(n *Normalizer) {
		if len(rules) > 0 {
			n.rules = append([]Rule(nil), rules...)
		}
	}
}
