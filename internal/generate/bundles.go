// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package generate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/dacolabs/dtogen/internal/schema"
)

// Option bundle names.
const (
	BundleTimestamps  = "timestamps"
	BundleSoftDeletes = "soft_deletes"
	BundleUUID        = "uuid"
	BundleVersioning  = "versioning"
	BundleTaggable    = "taggable"
	BundleAuditable   = "auditable"
	BundleSluggable   = "sluggable"
	BundleImmutable   = "immutable"
	BundleCacheable   = "cacheable"
)

// traitBundles maps header behavior tags to option bundles.
var traitBundles = map[string]string{
	"HasTimestamps":  BundleTimestamps,
	"HasSoftDeletes": BundleSoftDeletes,
	"HasUuid":        BundleUUID,
	"HasVersioning":  BundleVersioning,
	"HasTagging":     BundleTaggable,
	"HasAuditing":    BundleAuditable,
	"HasSlug":        BundleSluggable,
	"HasImmutable":   BundleImmutable,
	"HasCaching":     BundleCacheable,
}

// NormalizeOption converts an option name to its canonical snake_case form.
func NormalizeOption(name string) string {
	return inflect.Underscore(strings.TrimSpace(name))
}

// DefaultOptionRegistry returns the option registry with every built-in bundle.
func DefaultOptionRegistry() *OptionRegistry {
	return NewOptionRegistry(
		bundle{name: BundleTimestamps, fields: timestampFields},
		bundle{name: BundleSoftDeletes, fields: softDeleteFields, methods: softDeleteMethods},
		bundle{name: BundleUUID, fields: uuidFields, methods: uuidMethods},
		bundle{name: BundleVersioning, fields: versionFields, methods: versionMethods},
		bundle{name: BundleTaggable, fields: tagFields, methods: tagMethods},
		bundle{name: BundleAuditable, fields: auditFields, methods: auditMethods},
		bundle{name: BundleSluggable, fields: slugFields, methods: slugMethods},
		bundle{name: BundleImmutable, methods: immutableMethods},
		bundle{name: BundleCacheable, methods: cacheMethods},
	)
}

// bundle is an option emitter that may inject fields and append methods.
// A disabled option (false, "no", 0) does neither.
type bundle struct {
	name    string
	fields  func(opt schema.Option, ctx *Context) ([]InjectedField, error)
	methods func(opt schema.Option, ctx *Context) ([]string, error)
}

func (b bundle) Supports(name string) bool {
	return NormalizeOption(name) == b.name
}

func (b bundle) Expand(opt schema.Option, ctx *Context) ([]InjectedField, error) {
	if b.fields == nil || !enabled(opt.Value) {
		return nil, nil
	}
	return b.fields(opt, ctx)
}

func (b bundle) Generate(_ string, opt schema.Option, ctx *Context) ([]string, error) {
	if b.methods == nil || !enabled(opt.Value) {
		return nil, nil
	}
	return b.methods(opt, ctx)
}

func enabled(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "", "0", "false", "no", "off":
			return false
		}
		return true
	case int:
		return x != 0
	case float64:
		return x != 0
	case []any:
		return len(x) > 0
	}
	return true
}

func injected(name string, kind schema.Kind, required bool, rules ...string) InjectedField {
	return InjectedField{Field: schema.Field{Name: name, Type: kind, Required: required, Validation: rules}}
}

// timestampFields are optional so they can follow any defaulted user field.
func timestampFields(schema.Option, *Context) ([]InjectedField, error) {
	return []InjectedField{
		injected("created_at", schema.KindDateTime, false),
		injected("updated_at", schema.KindDateTime, false),
	}, nil
}

func softDeleteFields(schema.Option, *Context) ([]InjectedField, error) {
	return []InjectedField{injected("deleted_at", schema.KindDateTime, false)}, nil
}

func softDeleteMethods(schema.Option, *Context) ([]string, error) {
	return []string{`public function isDeleted(): bool
{
    return $this->deleted_at !== null;
}`, `public function restore(): static
{
    return static::fromArray(array_merge($this->toArray(), ['deleted_at' => null]));
}`}, nil
}

// uuidFields replaces any user-declared id: the bundle owns the identifier.
func uuidFields(schema.Option, *Context) ([]InjectedField, error) {
	f := injected("id", schema.KindUUID, true)
	f.Override = true
	return []InjectedField{f}, nil
}

func uuidMethods(schema.Option, *Context) ([]string, error) {
	return []string{`public static function generateUuid(): string
{
    return (string) \Illuminate\Support\Str::uuid();
}`, `public static function withGeneratedUuid(array $data = []): static
{
    return static::fromArray(array_merge($data, ['id' => self::generateUuid()]));
}`}, nil
}

func versionFields(schema.Option, *Context) ([]InjectedField, error) {
	f := injected("version", schema.KindInteger, false, "min:1")
	f.Field.Default = 1
	f.Field.HasDefault = true
	return []InjectedField{f}, nil
}

func versionMethods(schema.Option, *Context) ([]string, error) {
	return []string{`public function nextVersion(): static
{
    return static::fromArray(array_merge($this->toArray(), ['version' => $this->version + 1]));
}`, `public function isNewerThan(self $other): bool
{
    return $this->version > $other->version;
}`}, nil
}

func tagFields(schema.Option, *Context) ([]InjectedField, error) {
	f := injected("tags", schema.KindArray, false)
	f.Field.Default = []any{}
	f.Field.HasDefault = true
	return []InjectedField{f}, nil
}

func tagMethods(schema.Option, *Context) ([]string, error) {
	return []string{`public function addTag(string $tag): static
{
    $tags = $this->tags ?? [];
    if (!in_array($tag, $tags, true)) {
        $tags[] = $tag;
    }

    return static::fromArray(array_merge($this->toArray(), ['tags' => $tags]));
}`, `public function removeTag(string $tag): static
{
    $tags = array_values(array_filter($this->tags ?? [], fn ($t) => $t !== $tag));

    return static::fromArray(array_merge($this->toArray(), ['tags' => $tags]));
}`, `public function hasTag(string $tag): bool
{
    return in_array($tag, $this->tags ?? [], true);
}`}, nil
}

func auditFields(schema.Option, *Context) ([]InjectedField, error) {
	return []InjectedField{
		injected("created_by", schema.KindUUID, false),
		injected("updated_by", schema.KindUUID, false),
	}, nil
}

func auditMethods(schema.Option, *Context) ([]string, error) {
	return []string{`public function setCreator(string $userId): static
{
    return static::fromArray(array_merge($this->toArray(), ['created_by' => $userId]));
}`, `public function setUpdater(string $userId): static
{
    return static::fromArray(array_merge($this->toArray(), ['updated_by' => $userId]));
}`, `public function getAuditInfo(): array
{
    return [
        'created_by' => $this->created_by,
        'updated_by' => $this->updated_by,
    ];
}`}, nil
}

// slugSource returns the field a slug is derived from: {from: field}, defaulting to name.
func slugSource(opt schema.Option, ctx *Context) (string, error) {
	from := "name"
	if m, ok := opt.Value.(map[string]any); ok {
		if v, ok := m["from"]; ok {
			s, ok := v.(string)
			if !ok || s == "" {
				return "", Errorf(InvalidOption, opt.Name, "sluggable 'from' must name a field")
			}
			from = s
		}
	}
	if _, ok := ctx.Definition.Field(from); !ok {
		return "", Errorf(InvalidOption, opt.Name, "sluggable source field %q is not declared", from)
	}
	return from, nil
}

func slugFields(opt schema.Option, ctx *Context) ([]InjectedField, error) {
	if _, err := slugSource(opt, ctx); err != nil {
		return nil, err
	}
	return []InjectedField{injected("slug", schema.KindString, false, "max:255", "regex:/^[a-z0-9-]+$/")}, nil
}

func slugMethods(opt schema.Option, ctx *Context) ([]string, error) {
	from, err := slugSource(opt, ctx)
	if err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf(`public function generateSlug(): static
{
    $slug = \Illuminate\Support\Str::slug((string) ($this->%[1]s ?? ''));

    return static::fromArray(array_merge($this->toArray(), ['slug' => $slug]));
}`, from), fmt.Sprintf(`public function getSlug(): string
{
    return $this->slug ?? \Illuminate\Support\Str::slug((string) ($this->%[1]s ?? ''));
}`, from)}, nil
}

func immutableMethods(schema.Option, *Context) ([]string, error) {
	return []string{`public function with(array $changes): static
{
    return static::fromArray(array_merge($this->toArray(), $changes));
}`, `public function copy(): static
{
    return static::fromArray($this->toArray());
}`, `public function equals(self $other): bool
{
    return $this->toArray() === $other->toArray();
}`, `public function hash(): string
{
    return hash('sha256', serialize($this->toArray()));
}`}, nil
}

func cacheMethods(opt schema.Option, _ *Context) ([]string, error) {
	ttl := 3600
	if m, ok := opt.Value.(map[string]any); ok {
		if v, ok := m["ttl"]; ok {
			n, err := strconv.Atoi(fmt.Sprint(v))
			if err != nil || n <= 0 {
				return nil, Errorf(InvalidOption, opt.Name, "cacheable ttl %v must be a positive integer", v)
			}
			ttl = n
		}
	}
	return []string{`public function getCacheKey(): string
{
    return 'dto:' . static::class . ':' . hash('sha256', serialize($this->toArray()));
}`, fmt.Sprintf(`public function cache(int $ttl = %d): static
{
    cache()->put($this->getCacheKey(), $this, $ttl);

    return $this;
}`, ttl), `public static function fromCache(string $cacheKey): ?static
{
    return cache()->get($cacheKey);
}`, `public function clearCache(): bool
{
    return cache()->forget($this->getCacheKey());
}`}, nil
}
