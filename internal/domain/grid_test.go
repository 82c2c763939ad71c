package domain

import "testing"

func TestGridHasNineEmptyCells(t *testing.T) {
    var g Grid
    if len(g.Empty()) != 9 {
        t.Fatalf("expected 9 empty cells, got %d", len(g.Empty()))
    }
    for _, c := range AllCoords {
        if !c.InBounds() || !g.IsEmpty(c) {
            t.Fatalf("expected %v empty and in bounds", c)
        }
    }
}

func TestAllCoordsRowMajor(t *testing.T) {
    for i, c := range AllCoords {
        if c.Index() != i {
            t.Fatalf("coord %v at position %d has index %d", c, i, c.Index())
        }
    }
}

func TestLinesThroughCenterAndCorners(t *testing.T) {
    if n := len(LinesThrough(Center)); n != 4 {
        t.Fatalf("center should be on 4 lines, got %d", n)
    }
    if n := len(LinesThrough(C(2, 0))); n != 3 {
        t.Fatalf("corner should be on 3 lines, got %d", n)
    }
    if n := len(LinesThrough(C(1, 0))); n != 2 {
        t.Fatalf("side should be on 2 lines, got %d", n)
    }
    for i, l := range AllLines {
        if l.Slot() != i {
            t.Fatalf("line %v slot %d, want %d", l, l.Slot(), i)
        }
        for _, c := range l.Cells() {
            found := false
            for _, through := range LinesThrough(c) {
                if through == l {
                    found = true
                }
            }
            if !found {
                t.Fatalf("%v does not list %v", c, l)
            }
        }
    }
}

func TestCornerSideClassification(t *testing.T) {
    corners, sides := 0, 0
    for _, c := range AllCoords {
        if c.IsCorner() {
            corners++
        }
        if c.IsSide() {
            sides++
        }
    }
    if corners != 4 || sides != 4 {
        t.Fatalf("expected 4 corners and 4 sides, got %d/%d", corners, sides)
    }
    if Center.IsCorner() || Center.IsSide() {
        t.Fatalf("center is neither corner nor side")
    }
    if C(0, 0).Opposite() != C(2, 2) || C(2, 0).Opposite() != C(0, 2) {
        t.Fatalf("unexpected opposite corners")
    }
}

func TestParseGridRoundTrip(t *testing.T) {
    g, err := ParseGrid("X-O\n-X-\nO--")
    if err != nil {
        t.Fatalf("parse: %v", err)
    }
    if g.At(C(0, 0)) != X || g.At(C(2, 0)) != O || g.At(C(0, 2)) != O || g.At(Center) != X {
        t.Fatalf("unexpected grid %q", g.String())
    }
    if g.String() != "X-O\n-X-\nO--" {
        t.Fatalf("unexpected render %q", g.String())
    }
    if _, err := ParseGrid("XO"); err == nil {
        t.Fatalf("expected error for short grid")
    }
    if _, err := ParseGrid("XXXXXXXXZ"); err == nil {
        t.Fatalf("expected error for bad cell")
    }
}
