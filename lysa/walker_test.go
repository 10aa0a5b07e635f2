package lysa

import "testing"

func TestMeshKey(t *testing.T) {
	tests := []struct {
		name      string
		reconcile bool
		want      string
	}{
		{"Rock.001", true, "Rock"},
		{"Rock.001", false, "Rock.001"},
		{"Rock", true, "Rock"},
		{"Rock.v2", true, "Rock.v2"},
		{"Rock.12.003", true, "Rock.12"},
	}
	for _, tt := range tests {
		if got := MeshKey(tt.name, tt.reconcile); got != tt.want {
			t.Fatalf("MeshKey(%q, %v) = %q, want %q", tt.name, tt.reconcile, got, tt.want)
		}
	}
}

func TestMeshProxyChild(t *testing.T) {
	obj := plainObject("Rock.001")
	obj.Kind = KindMesh
	node, err := BuildNodeDocument(obj, ExportOptions{ReconcileMeshNames: true})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if node.Child == nil {
		t.Fatal("mesh node missing proxy child")
	}
	if node.Child.ID != "Rock.mesh" {
		t.Fatalf("child id = %q, want Rock.mesh", node.Child.ID)
	}
	if node.Child.Duplicate != "true" {
		t.Fatalf("duplicate = %q, want true", node.Child.Duplicate)
	}
	if node.Children != nil {
		t.Fatal("mesh node must not carry top-level children")
	}
}

func TestMeshChildrenNestUnderProxy(t *testing.T) {
	obj := plainObject("Crate")
	obj.Kind = KindMesh
	obj.Children = []*SceneObject{plainObject("Marker")}
	node, err := BuildNodeDocument(obj, ExportOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(node.Children) != 0 {
		t.Fatalf("children must nest under the proxy, found %d at top level", len(node.Children))
	}
	if len(node.Child.Children) != 1 || node.Child.Children[0].ID != "Marker" {
		t.Fatalf("proxy children wrong: %+v", node.Child.Children)
	}
}

func TestGroupChildrenTopLevel(t *testing.T) {
	obj := plainObject("Level")
	obj.Children = []*SceneObject{plainObject("A"), plainObject("B")}
	node, err := BuildNodeDocument(obj, ExportOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if node.Child != nil {
		t.Fatal("group must not carry a proxy child")
	}
	if len(node.Children) != 2 || node.Children[0].ID != "A" || node.Children[1].ID != "B" {
		t.Fatalf("children wrong: %+v", node.Children)
	}
}

func TestReconciliationSharedKeyDistinctResources(t *testing.T) {
	a := plainObject("Rock.001")
	a.Kind = KindMesh
	b := plainObject("Rock.002")
	b.Kind = KindMesh
	opts := ExportOptions{ReconcileMeshNames: true}

	for _, obj := range []*SceneObject{a, b} {
		node, err := BuildNodeDocument(obj, opts)
		if err != nil {
			t.Fatalf("build %s: %v", obj.Name, err)
		}
		if node.Child.ID != "Rock.mesh" {
			t.Fatalf("%s: child id = %q, want the shared key Rock.mesh", obj.Name, node.Child.ID)
		}
	}

	var entries []ResourceEntry
	for _, obj := range []*SceneObject{a, b} {
		entries = CollectResources(entries, obj, "")
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 resource entries, got %d", len(entries))
	}
	if entries[0].ID != "Rock.001.mesh" || entries[1].ID != "Rock.002.mesh" {
		t.Fatalf("resource ids must keep instance names: %q, %q", entries[0].ID, entries[1].ID)
	}
}

func TestCollectResourcesPaths(t *testing.T) {
	lid := plainObject("Lid")
	lid.Kind = KindMesh
	crate := plainObject("Crate")
	crate.Kind = KindMesh
	crate.Children = []*SceneObject{lid}
	level := plainObject("Level")
	level.Children = []*SceneObject{crate, plainObject("Spawn")}

	entries := CollectResources(nil, level, "")
	if len(entries) != 2 {
		t.Fatalf("expected one entry per mesh, got %d", len(entries))
	}
	if entries[0].Path != "Level/Crate" || entries[1].Path != "Level/Crate/Lid" {
		t.Fatalf("paths wrong: %q, %q", entries[0].Path, entries[1].Path)
	}
	for _, e := range entries {
		if e.Type != EntryMesh || e.Resource != ResourcesID {
			t.Fatalf("entry shape wrong: %+v", e)
		}
	}
}

func TestLightNodeKeepsChildren(t *testing.T) {
	obj := lightObject("Lamp", LightData{Kind: LightPoint, Energy: 10})
	obj.Children = []*SceneObject{plainObject("Flare")}
	node, err := BuildNodeDocument(obj, ExportOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if node.Class != "OmniLight" {
		t.Fatalf("class = %q", node.Class)
	}
	if len(node.Children) != 1 || node.Children[0].ID != "Flare" {
		t.Fatalf("light children wrong: %+v", node.Children)
	}
	if _, ok := node.Properties.Get("scale"); ok {
		t.Fatal("light properties must replace the generic block")
	}
}

func TestLightClassOverridesAuthored(t *testing.T) {
	obj := lightObject("Sun", LightData{Kind: LightSun, Energy: 10})
	obj.Meta = &Metadata{CustomClassName: "MySun"}
	node, err := BuildNodeDocument(obj, ExportOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if node.Class != "DirectionalLight" {
		t.Fatalf("class = %q, light subtype must win", node.Class)
	}
}
