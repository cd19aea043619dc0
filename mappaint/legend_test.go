package mappaint

import (
	"testing"

	snapshot "github.com/jamesrr39/go-snapshot-testing"
	"github.com/stretchr/testify/require"
)

func TestLegendText(t *testing.T) {
	rules := []ColorRule{
		ExactValueRule{Value: "no data", Color: testYellow, Label: "No data"},
		RangeRule{From: 0, To: 30, Color: testGreen},
		RangeRule{From: 30, To: 100, Color: testRed, Label: "Heavy"},
	}

	resolver, err := NewRuleResolver(rules, testFormatNumber)
	require.NoError(t, err)

	text := LegendText(resolver.LegendEntries())

	snapshot.AssertMatchesSnapshot(t, "legend text", snapshot.NewTextSnapshot(text))
}
