package factory

import "testing"

type sink struct{ Bucket string }

type sinkConf struct {
	Bucket string `json:"bucket"`
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sink]()
	if err := reg.Register("influxdb", func(conf map[string]any) (*sink, error) {
		var c sinkConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sink{Bucket: c.Bucket}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "influxdb", Conf: map[string]any{"bucket": "usage"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.Bucket != "usage" {
		t.Fatalf("expected usage got %s", inst.Bucket)
	}
	if names := reg.Names(); len(names) != 1 || names[0] != "influxdb" {
		t.Fatalf("unexpected names: %v", names)
	}
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", nil); err == nil {
		t.Fatal("expected duplicate error")
	}
	if _, err := reg.Create(ModuleConfig{Type: "y"}); err == nil {
		t.Fatal("expected unknown type error")
	}
}
