package solana

import (
	"context"
	"sync"

	"github.com/commitment-parties/agent/src/utils/config"
	"github.com/commitment-parties/agent/src/utils/logger"
	"github.com/commitment-parties/agent/src/utils/monitoring"
	"github.com/commitment-parties/agent/src/utils/task"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// Typed access to the commitment pool program.
// All writes go through the agent keypair, all reads go through the
// JSON-RPC client.
type Gateway struct {
	config *config.Solana
	log    *logrus.Entry

	client    *Client
	signer    *Signer
	programId Pubkey

	// PDA derivation is deterministic, keep the results
	mtx       sync.Mutex
	poolPdas  map[uint64]Pubkey
	vaultPdas map[Pubkey]Pubkey
}

func NewGateway(config *config.Config) (self *Gateway, err error) {
	self = new(Gateway)
	self.config = &config.Solana
	self.log = logger.NewSublogger("solana-gateway")
	self.poolPdas = make(map[uint64]Pubkey)
	self.vaultPdas = make(map[Pubkey]Pubkey)

	self.programId, err = PubkeyFromBase58(config.Solana.ProgramId)
	if err != nil {
		return
	}

	self.signer, err = NewSigner(&config.Solana)
	if err != nil {
		return
	}

	self.client = NewClient(&config.Solana)
	return
}

func (self *Gateway) WithMonitor(monitor monitoring.Monitor) *Gateway {
	self.client.WithMonitor(monitor)
	return self
}

func (self *Gateway) Signer() Pubkey {
	return self.signer.Pubkey()
}

func (self *Gateway) PoolPubkey(poolId uint64) (out Pubkey, err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	out, ok := self.poolPdas[poolId]
	if ok {
		return
	}

	out, _, err = PoolAddress(self.programId, poolId)
	if err != nil {
		return
	}
	self.poolPdas[poolId] = out
	return
}

func (self *Gateway) vaultPubkey(pool Pubkey) (out Pubkey, err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	out, ok := self.vaultPdas[pool]
	if ok {
		return
	}

	out, _, err = VaultAddress(self.programId, pool)
	if err != nil {
		return
	}
	self.vaultPdas[pool] = out
	return
}

func (self *Gateway) GetPool(ctx context.Context, poolId uint64) (out *ChainPool, err error) {
	pubkey, err := self.PoolPubkey(poolId)
	if err != nil {
		return
	}

	info, err := self.client.GetAccountInfo(ctx, pubkey.String())
	if err != nil {
		return
	}

	return DecodePool(info.Data)
}

func (self *Gateway) GetParticipant(ctx context.Context, poolId uint64, wallet string) (out *ChainParticipant, err error) {
	pool, err := self.PoolPubkey(poolId)
	if err != nil {
		return
	}

	walletPubkey, err := PubkeyFromBase58(wallet)
	if err != nil {
		return
	}

	pubkey, _, err := ParticipantAddress(self.programId, pool, walletPubkey)
	if err != nil {
		return
	}

	info, err := self.client.GetAccountInfo(ctx, pubkey.String())
	if err != nil {
		return
	}

	return DecodeParticipant(info.Data)
}

func (self *Gateway) GetVaultBalance(ctx context.Context, poolId uint64) (balance uint64, err error) {
	pool, err := self.PoolPubkey(poolId)
	if err != nil {
		return
	}

	vault, err := self.vaultPubkey(pool)
	if err != nil {
		return
	}

	return self.client.GetBalance(ctx, vault.String())
}

func (self *Gateway) GetSolBalance(ctx context.Context, wallet string) (uint64, error) {
	return self.client.GetBalance(ctx, wallet)
}

func (self *Gateway) GetTokenBalance(ctx context.Context, wallet, mint string) (uint64, error) {
	return self.client.GetTokenBalance(ctx, wallet, mint)
}

func (self *Gateway) GetSignaturesForAddress(ctx context.Context, wallet string, limit int) ([]SignatureInfo, error) {
	return self.client.GetSignaturesForAddress(ctx, wallet, limit)
}

// Signs and submits the instructions, retrying transient failures with
// a fresh blockhash on each attempt. Terminal program errors stop the retry
// loop immediately.
func (self *Gateway) submit(ctx context.Context, instructions []Instruction) (signature string, err error) {
	err = task.NewRetry().
		WithContext(ctx).
		WithMaxElapsedTime(self.config.SubmitBackoffMaxElapsedTime).
		WithMaxInterval(self.config.SubmitBackoffMaxInterval).
		WithOnError(func(err error, isDurationAcceptable bool) error {
			if IsTerminal(err) {
				self.log.WithError(err).Error("Terminal error, giving up")
				return backoff.Permanent(err)
			}
			self.log.WithError(err).Warn("Failed to submit transaction, retrying")
			return err
		}).
		Run(func() (err error) {
			blockhash, err := self.client.GetLatestBlockhash(ctx)
			if err != nil {
				return
			}

			txBase64, _, err := BuildTransaction(instructions, blockhash, self.signer)
			if err != nil {
				return backoff.Permanent(err)
			}

			signature, err = self.client.SendTransaction(ctx, txBase64)
			return
		})
	return
}

// Records a verification result on-chain
func (self *Gateway) VerifyParticipant(ctx context.Context, poolId uint64, wallet string, day uint8, passed bool) (signature string, err error) {
	pool, err := self.PoolPubkey(poolId)
	if err != nil {
		return
	}

	walletPubkey, err := PubkeyFromBase58(wallet)
	if err != nil {
		return
	}

	participant, _, err := ParticipantAddress(self.programId, pool, walletPubkey)
	if err != nil {
		return
	}

	instruction := NewVerifyParticipantInstruction(self.programId, pool, participant, self.signer.Pubkey(), day, passed)
	signature, err = self.submit(ctx, []Instruction{instruction})
	if err != nil {
		return
	}

	self.client.InvalidateAccount(participant.String())
	return
}

// Marks an ended pool as settled on-chain
func (self *Gateway) DistributeRewards(ctx context.Context, poolId uint64) (signature string, err error) {
	pool, err := self.PoolPubkey(poolId)
	if err != nil {
		return
	}

	vault, err := self.vaultPubkey(pool)
	if err != nil {
		return
	}

	instruction := NewDistributeRewardsInstruction(self.programId, pool, vault, self.signer.Pubkey())
	signature, err = self.submit(ctx, []Instruction{instruction})
	if err != nil {
		return
	}

	self.client.InvalidateAccount(pool.String())
	return
}

// Sends lamports from the agent wallet to the destination
func (self *Gateway) TransferLamports(ctx context.Context, destination string, lamports uint64) (signature string, err error) {
	to, err := PubkeyFromBase58(destination)
	if err != nil {
		return
	}

	instruction := NewTransferInstruction(self.signer.Pubkey(), to, lamports)
	return self.submit(ctx, []Instruction{instruction})
}
