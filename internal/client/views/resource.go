package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophcards/internal/client/models"
	"github.com/dmitrijs2005/gophcards/internal/client/store"
)

// Schema describes one resource list page.
type Schema[T models.Identifiable] struct {
	Name   string
	Fields []Field[T]
	// Row is the one-line summary shown by list.
	Row func(T) string
	// New returns a draft with owner ids filled in.
	New func() T

	List   func(ctx context.Context) ([]T, error)
	Create func(ctx context.Context, item T) (T, error)
	Update func(ctx context.Context, id string, item T) (T, error)
	Delete func(ctx context.Context, id string) error
}

// ResourceView is the list/add/edit/delete page shared by all resources.
type ResourceView[T models.Identifiable] struct {
	env    *Env
	schema Schema[T]
	items  *store.List[T]
	life   lifecycle
}

func NewResourceView[T models.Identifiable](env *Env, schema Schema[T]) *ResourceView[T] {
	return &ResourceView[T]{env: env, schema: schema, items: store.NewList[T]()}
}

func (v *ResourceView[T]) Name() string { return v.schema.Name }

// Items exposes the backing list.
func (v *ResourceView[T]) Items() *store.List[T] { return v.items }

func (v *ResourceView[T]) Mount(ctx context.Context) error {
	v.life.start(ctx)
	return v.Load(ctx)
}

func (v *ResourceView[T]) Unmount() {
	v.life.stop()
}

// Load fetches the list and commits it into the store. The result is dropped
// when the page was unmounted meanwhile or a newer load already landed.
func (v *ResourceView[T]) Load(ctx context.Context) error {
	ctx, cancel := v.life.bind(ctx)
	defer cancel()

	rev := v.items.BeginLoad()
	fetched, err := v.schema.List(ctx)
	if err != nil {
		v.env.fail("Failed to load "+v.schema.Name, err)
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	v.items.Commit(rev, fetched)
	return nil
}

func (v *ResourceView[T]) Render() {
	items := v.items.Snapshot()
	if len(items) == 0 {
		if v.items.Loaded() {
			v.env.printf("No %s yet.", v.schema.Name)
		}
		return
	}
	for _, it := range items {
		v.env.printf("%s", v.schema.Row(it))
	}
}

func (v *ResourceView[T]) Help() string {
	return "list, add, edit <id>, delete <id>, show <id>, refresh"
}

func (v *ResourceView[T]) Handle(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list", "l":
		v.Render()
		return nil
	case "refresh":
		if err := v.Load(ctx); err != nil {
			return err
		}
		v.Render()
		return nil
	case "add":
		draft := v.schema.New()
		if err := fill(v.env.Prompt, v.schema.Fields, &draft); err != nil {
			return err
		}
		_, err := v.Add(ctx, draft)
		return err
	case "edit", "delete", "show":
		if len(args) == 0 {
			v.env.printf("Usage: %s <id>", cmd)
			return nil
		}
		return v.handleItem(ctx, cmd, args[0])
	}
	return ErrUnknownCommand
}

func (v *ResourceView[T]) handleItem(ctx context.Context, cmd, id string) error {
	item, ok := v.items.Get(id)
	if !ok {
		v.env.printf("No %s entry with id %s.", v.schema.Name, id)
		return nil
	}

	switch cmd {
	case "show":
		v.env.printf("%s", describeItem(v.schema.Fields, item))
		return nil
	case "edit":
		if err := fill(v.env.Prompt, v.schema.Fields, &item); err != nil {
			return err
		}
		_, err := v.Edit(ctx, id, item)
		return err
	default:
		return v.Delete(ctx, id)
	}
}

// Add creates item on the backend and appends the result locally.
func (v *ResourceView[T]) Add(ctx context.Context, item T) (T, error) {
	ctx, cancel := v.life.bind(ctx)
	defer cancel()

	created, err := v.schema.Create(ctx, item)
	if err != nil {
		v.env.fail("Failed to add "+v.singular(), err)
		return created, err
	}
	if err := ctx.Err(); err != nil {
		return created, err
	}
	v.items.Upsert(created)
	v.env.printf("Added %s.", v.schema.Row(created))
	return created, nil
}

// Edit updates item on the backend and replaces it locally.
func (v *ResourceView[T]) Edit(ctx context.Context, id string, item T) (T, error) {
	ctx, cancel := v.life.bind(ctx)
	defer cancel()

	updated, err := v.schema.Update(ctx, id, item)
	if err != nil {
		v.env.fail("Failed to update "+v.singular(), err)
		return updated, err
	}
	if err := ctx.Err(); err != nil {
		return updated, err
	}
	v.items.Upsert(updated)
	v.env.printf("Updated %s.", v.schema.Row(updated))
	return updated, nil
}

// Delete removes id on the backend and locally.
func (v *ResourceView[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := v.life.bind(ctx)
	defer cancel()

	if err := v.schema.Delete(ctx, id); err != nil {
		v.env.fail("Failed to delete "+v.singular(), err)
		return err
	}
	v.items.Remove(id)
	v.env.printf("Deleted %s.", id)
	return nil
}

func (v *ResourceView[T]) singular() string {
	return strings.TrimSuffix(v.schema.Name, "s")
}

func shortList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return fmt.Sprintf(" (%s)", strings.Join(items, ", "))
}
