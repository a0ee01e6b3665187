package dropbox

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"

	"github.com/unalkalkan/dropfs/remote"
)

// fakeClient embeds the SDK interface so only the methods under test need
// stubbing; anything else panics loudly.
type fakeClient struct {
	files.Client

	searchArg  *files.SearchV2Arg
	searchRes  *files.SearchV2Result
	uploadArg  *files.UploadArg
	uploadBody []byte
	deleteErr  error
	listPages  []*files.ListFolderResult
	listCalls  int
}

func (f *fakeClient) SearchV2(arg *files.SearchV2Arg) (*files.SearchV2Result, error) {
	f.searchArg = arg
	return f.searchRes, nil
}

func (f *fakeClient) Upload(arg *files.UploadArg, content io.Reader) (*files.FileMetadata, error) {
	f.uploadArg = arg
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	f.uploadBody = data
	return &files.FileMetadata{}, nil
}

func (f *fakeClient) DeleteV2(arg *files.DeleteArg) (*files.DeleteResult, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &files.DeleteResult{}, nil
}

func (f *fakeClient) ListFolder(arg *files.ListFolderArg) (*files.ListFolderResult, error) {
	f.listCalls++
	return f.listPages[0], nil
}

func (f *fakeClient) ListFolderContinue(arg *files.ListFolderContinueArg) (*files.ListFolderResult, error) {
	f.listCalls++
	return f.listPages[f.listCalls-1], nil
}

func TestApiPath(t *testing.T) {
	// The API spells the root as "", not "/".
	if got := apiPath("/"); got != "" {
		t.Errorf("apiPath(/) = %q", got)
	}
	if got := apiPath("/a/b.txt"); got != "/a/b.txt" {
		t.Errorf("apiPath(/a/b.txt) = %q", got)
	}
}

func TestSearch(t *testing.T) {
	fake := &fakeClient{
		searchRes: &files.SearchV2Result{
			Matches: []*files.SearchMatchV2{
				{Metadata: &files.MetadataV2{Metadata: &files.FileMetadata{
					Metadata: files.Metadata{Name: "Report.csv", PathLower: "/data/report.csv"},
				}}},
				{Metadata: &files.MetadataV2{Metadata: &files.FolderMetadata{
					Metadata: files.Metadata{Name: "report.csv", PathLower: "/data/report.csv"},
				}}},
			},
		},
	}
	store := NewFromClient(fake)

	matches, err := store.Search(context.Background(), "/data", "Report.csv")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches = %v", matches)
	}
	if matches[0].Path != "/data/report.csv" || matches[0].Name != "Report.csv" {
		t.Errorf("match = %+v", matches[0])
	}
	if fake.searchArg.Options == nil || fake.searchArg.Options.Path != "/data" {
		t.Errorf("search not scoped to parent folder: %+v", fake.searchArg.Options)
	}
	if !fake.searchArg.Options.FilenameOnly {
		t.Error("search should match file names only")
	}
}

func TestUploadModes(t *testing.T) {
	fake := &fakeClient{}
	store := NewFromClient(fake)
	ctx := context.Background()

	if err := store.Upload(ctx, bytes.NewReader([]byte("abc")), "/f.txt", true); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if fake.uploadArg.Mode.Tag != files.WriteModeOverwrite {
		t.Errorf("mode = %q, want overwrite", fake.uploadArg.Mode.Tag)
	}
	if string(fake.uploadBody) != "abc" {
		t.Errorf("body = %q", fake.uploadBody)
	}

	if err := store.Upload(ctx, bytes.NewReader(nil), "/f.txt", false); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if fake.uploadArg.Mode.Tag != files.WriteModeAdd {
		t.Errorf("mode = %q, want add", fake.uploadArg.Mode.Tag)
	}
}

func TestDeleteNotFound(t *testing.T) {
	fake := &fakeClient{deleteErr: errors.New("path_lookup/not_found/")}
	store := NewFromClient(fake)

	err := store.Delete(context.Background(), "/gone.txt")
	if !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestListFolderPagination(t *testing.T) {
	fake := &fakeClient{
		listPages: []*files.ListFolderResult{
			{
				Entries: []files.IsMetadata{
					&files.FileMetadata{Metadata: files.Metadata{Name: "a.txt"}},
				},
				HasMore: true,
				Cursor:  "c1",
			},
			{
				Entries: []files.IsMetadata{
					&files.FolderMetadata{Metadata: files.Metadata{Name: "sub"}},
				},
			},
		},
	}
	store := NewFromClient(fake)

	entries, err := store.ListFolder(context.Background(), "/")
	if err != nil {
		t.Fatalf("ListFolder failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %v", entries)
	}
	if entries[0].Name != "a.txt" || entries[0].IsFolder {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].Name != "sub" || !entries[1].IsFolder {
		t.Errorf("entry 1 = %+v", entries[1])
	}
	if fake.listCalls != 2 {
		t.Errorf("list calls = %d, want 2", fake.listCalls)
	}
}
