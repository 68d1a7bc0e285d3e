package anilist

import (
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/anisan-cli/anifetch/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

type cacheData struct {
	Animes map[string]*Anime `json:"animes"`
}

// cacher is a thread-safe map on top of a single gache file.
type cacher struct {
	internal *gache.Cache[*cacheData]
	mu       sync.Mutex
}

func (c *cacher) Get(id int) mo.Option[*Anime] {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[*Anime]()
	}

	if anime, ok := data.Animes[strconv.Itoa(id)]; ok {
		return mo.Some(anime)
	}

	return mo.None[*Anime]()
}

func (c *cacher) Set(anime *Anime) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil || data.Animes == nil {
		data = &cacheData{Animes: make(map[string]*Anime)}
	}

	data.Animes[strconv.Itoa(anime.ID)] = anime
	return c.internal.Set(data)
}

var idCacher = &cacher{
	internal: gache.New[*cacheData](&gache.Options{
		Path:       filepath.Join(where.Cache(), "anilist_id_cache.json"),
		Lifetime:   time.Hour * 24 * 2,
		FileSystem: &filesystem.GacheFs{},
	}),
}
