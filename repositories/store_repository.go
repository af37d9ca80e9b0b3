package repositories

import (
	"encoding/json"
	"log"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"
)

// Claves del estado persistido localmente
const (
	KeyProperties    = "properties"
	KeyToken         = "token"
	KeyTokenExpiry   = "token_expiry"
	KeyTokenRefresh  = "token_refresh"
	KeyRefreshExpiry = "refresh_expiry"
)

// localTTL es el TTL del nivel local; el nivel compartido (Memcached)
// usa el TTL pedido por el caller
const localTTL = 5 * time.Minute

// StoreRepository define el almacén clave-valor de estado local:
// la copia del catálogo y la sesión de autenticación serializadas
// como JSON. Las lecturas son síncronas (el nivel local responde
// sin red entre round-trips al backend).
type StoreRepository interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{}, ttl time.Duration)
	Delete(key string)
}

// storeRepository implementa StoreRepository con dos niveles:
// ccache en memoria del proceso y Memcached compartido entre procesos
type storeRepository struct {
	localCache      *ccache.Cache[[]byte]
	memcachedClient *memcache.Client
}

// NewStoreRepository crea una nueva instancia de StoreRepository
func NewStoreRepository(memcachedHost string) StoreRepository {
	localCache := ccache.New(ccache.Configure[[]byte]().MaxSize(1000))
	memcachedClient := memcache.New(memcachedHost)

	log.Printf("Store repository initialized with Memcached at %s", memcachedHost)

	return &storeRepository{
		localCache:      localCache,
		memcachedClient: memcachedClient,
	}
}

// Get obtiene datos del almacén (primero local, luego Memcached)
func (r *storeRepository) Get(key string, dest interface{}) bool {
	// 1. Buscar en el nivel local primero
	item := r.localCache.Get(key)
	if item != nil && !item.Expired() {
		if err := json.Unmarshal(item.Value(), dest); err != nil {
			log.Printf("Error unmarshaling local store data: key=%s, error=%v", key, err)
			return false
		}
		return true
	}

	// 2. Si no está en local, buscar en Memcached
	memcachedItem, err := r.memcachedClient.Get(key)
	if err != nil {
		if err != memcache.ErrCacheMiss {
			log.Printf("Error getting from Memcached: key=%s, error=%v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(memcachedItem.Value, dest); err != nil {
		log.Printf("Error unmarshaling store data from Memcached: key=%s, error=%v", key, err)
		return false
	}

	// 3. Repoblar el nivel local para las próximas lecturas
	r.localCache.Set(key, memcachedItem.Value, localTTL)

	return true
}

// Set guarda datos en ambos niveles del almacén
func (r *storeRepository) Set(key string, value interface{}, ttl time.Duration) {
	jsonData, err := json.Marshal(value)
	if err != nil {
		log.Printf("Error marshaling store data: key=%s, error=%v", key, err)
		return
	}

	r.localCache.Set(key, jsonData, localTTL)

	// Memcached usa segundos; 0 = sin expiración
	memcachedItem := &memcache.Item{
		Key:        key,
		Value:      jsonData,
		Expiration: int32(ttl / time.Second),
	}
	if err := r.memcachedClient.Set(memcachedItem); err != nil {
		log.Printf("Error setting store data in Memcached: key=%s, error=%v", key, err)
	}
}

// Delete elimina datos de ambos niveles del almacén
func (r *storeRepository) Delete(key string) {
	r.localCache.Delete(key)

	if err := r.memcachedClient.Delete(key); err != nil && err != memcache.ErrCacheMiss {
		log.Printf("Error deleting from Memcached: key=%s, error=%v", key, err)
	}
}
