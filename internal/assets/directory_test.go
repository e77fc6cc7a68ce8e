package assets_test

import (
	"context"
	"errors"
	"testing"

	"cuemix/internal/assets"
	"cuemix/internal/timeline"
)

func TestResolveMissingAssetFile(t *testing.T) {
	resolver := &assets.DirectoryResolver{Dir: t.TempDir()}
	marker, err := timeline.NewMarker(0, timeline.TypeSFX, "hit")
	if err != nil {
		t.Fatalf("NewMarker: %v", err)
	}
	version := &timeline.Version{Version: 1, AssetFile: "nope.mp3", Status: timeline.StatusGenerated}

	_, err = resolver.Resolve(context.Background(), marker, version)
	if !errors.Is(err, assets.ErrAssetMissing) {
		t.Fatalf("expected ErrAssetMissing, got %v", err)
	}
}

func TestResolveEmptyVersion(t *testing.T) {
	resolver := &assets.DirectoryResolver{Dir: t.TempDir()}
	marker, err := timeline.NewMarker(0, timeline.TypeSFX, "hit")
	if err != nil {
		t.Fatalf("NewMarker: %v", err)
	}

	_, err = resolver.Resolve(context.Background(), marker, nil)
	if !errors.Is(err, assets.ErrAssetMissing) {
		t.Fatalf("expected ErrAssetMissing for nil version, got %v", err)
	}
}
