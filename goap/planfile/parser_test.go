package planfile

import "testing"

func TestParseAtoms(t *testing.T) {
	tests := []struct {
		input    string
		wantType NodeType
		wantVal  string
	}{
		{"nil", NodeNil, ""},
		{"true", NodeBool, "true"},
		{"false", NodeBool, "false"},
		{"42", NodeInt, "42"},
		{"-3", NodeInt, "-3"},
		{"3.5", NodeFloat, "3.5"},
		{"unlock", NodeSymbol, "unlock"},
		{":source", NodeKeyword, ":source"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if node.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", node.Type, tt.wantType)
			}
			if node.Value != tt.wantVal {
				t.Errorf("Value = %q, want %q", node.Value, tt.wantVal)
			}
		})
	}
}

func TestParseCollections(t *testing.T) {
	node, err := Parse(`{:predicates [{:name "IsOpen" :usage :target}]
                         :actions []
                         :world []}`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if node.Type != NodeMap {
		t.Fatalf("Type = %v, want NodeMap", node.Type)
	}
	if len(node.Nodes) != 6 {
		t.Fatalf("len(Nodes) = %d, want 6 (3 key/value pairs)", len(node.Nodes))
	}

	predsKey, err := node.Nodes[0].AsKeyword()
	if err != nil || predsKey != "predicates" {
		t.Errorf("first key = %q, %v; want predicates", predsKey, err)
	}

	predsVal := node.Nodes[1]
	if predsVal.Type != NodeVector || len(predsVal.Nodes) != 1 {
		t.Fatalf("predicates value = %+v", predsVal)
	}

	predMap := predsVal.Nodes[0]
	if predMap.Type != NodeMap {
		t.Fatalf("predicate entry type = %v, want NodeMap", predMap.Type)
	}
}

func TestParseRejectsUnterminatedList(t *testing.T) {
	if _, err := Parse(`(unlock door`); err == nil {
		t.Error("expected error for unterminated list")
	}
}

func TestParseRejectsMapWithOddElements(t *testing.T) {
	if _, err := Parse(`{:a 1 :b}`); err == nil {
		t.Error("expected error for map with missing value")
	}
}

func TestParseRejectsBadKeyword(t *testing.T) {
	if _, err := Parse(`:`); err == nil {
		t.Error("expected error for empty keyword")
	}
}
